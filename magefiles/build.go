//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the testbed binary into bin/.
func (Build) Binary() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/vitrail", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go mod tidy and gofmt over the tree.
func (Build) Tidy() error {
	if _, err := executeCmd("go", withArgs("mod", "tidy"), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("gofmt", withArgs("-w", "."), withStream()); err != nil {
		return err
	}
	return nil
}

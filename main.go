/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/vitrail/engine"
	"github.com/spaghettifunk/vitrail/engine/core"
	"github.com/spaghettifunk/vitrail/testbed"

	// Graphics backends register themselves on import.
	_ "github.com/spaghettifunk/vitrail/engine/graphics/gltest"
	_ "github.com/spaghettifunk/vitrail/engine/graphics/opengl"
)

func main() {
	configPath := flag.String("config", "testbed/config.toml", "path to the application config")
	flag.Parse()

	config, err := engine.LoadConfig(*configPath)
	if err != nil {
		core.LogWarn("using default config: %s", err)
		config = engine.DefaultConfig()
	}
	if level, err := config.Level(); err == nil {
		core.SetLogLevel(level)
	}

	game := testbed.New(config)

	if err := game.Initialize(); err != nil {
		core.LogFatal("initialize: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// request a clean close on sigterm and friends
	go func() {
		<-sigCh
		game.RequestClose()
	}()

	if err := game.Run(); err != nil {
		core.LogError("run: %s", err)
	}

	if err := game.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
}

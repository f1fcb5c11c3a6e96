// Package graphics is a safety layer over the OpenGL object model. Every
// driver object (buffer, texture, shader program, framebuffer, vertex array)
// is paired with a non-zero identifier, a bind protocol that saves and
// restores the previously bound object, and a guard that scopes operations
// to the binding's lifetime.
//
// All state lives behind the Driver interface, which is an explicit handle
// passed to every constructor: there is no ambient context in this package.
// The opengl subpackage implements Driver on top of github.com/go-gl/gl;
// the gltest subpackage implements it in memory for tests.
package graphics

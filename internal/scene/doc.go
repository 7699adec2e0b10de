// Package scene is an in-memory display tree that implements display.Host.
// It backs the headless CLI commands, the terminal demo and the tests: views
// are Nodes with frames, overlays are Layers, taps are dispatched by hit
// testing from the topmost layer down, and timers run on a pluggable
// Scheduler.
package scene

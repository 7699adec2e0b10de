// Package theme provides bubble style presets. Presets are TOML files with a
// name, a description and a [style] table; bundled ones are embedded and
// user ones live in the poptip themes directory, shadowing bundled presets
// of the same name. A Watcher reports changes to a style file on disk.
package theme

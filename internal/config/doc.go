// Package config provides the typist configuration.
//
// Settings come from three layers, each overriding the one before:
//
//  1. Built-in defaults (Default)
//  2. The user TOML file, by default $XDG_CONFIG_HOME/typist/config.toml
//  3. TYPIST_* environment variables
//
// Example file:
//
//	[session]
//	precision = 5
//
//	[logging]
//	level = "debug"
//	file = "/tmp/typist.log"
//
//	[ui]
//	scrollOffset = 3
//	showTyped = true
//
//	[ui.colors]
//	correct = "green"
//	pending = "gray"
//	status = "#5f87af"
//
//	[reference]
//	watch = true
//	debounceMs = 150
//
// Environment variables map to dotted paths: TYPIST_UI_SCROLL_OFFSET sets
// ui.scrollOffset. TYPIST_PRECISION, TYPIST_LOG_LEVEL, TYPIST_LOG_FILE and
// TYPIST_WATCH are shorthands.
package config

// Package config holds the layered program configuration.
//
// Layers are applied in order, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, when one is given and exists
//  3. ATTACHEVENTS_* environment variables
//
// Each layer is read into a map by package loader, the maps are merged,
// and the result is decoded over the defaults with mapstructure.
//
// Example file:
//
//	[binder]
//	selector_errors = "propagate"
//	probe_scope = "root"
//
//	[logging]
//	level = "debug"
//	format = "json"
//
//	[terminal]
//	focusable = "li, button"
package config

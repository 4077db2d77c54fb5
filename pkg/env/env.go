// Package env keeps names of environment variables with special significance to
// esval.
package env

// Environment variables with special significance to esval.
const (
	// Path of the configuration file; overrides the default location.
	ESVAL_CONFIG = "ESVAL_CONFIG"
	// Set to any non-empty value to turn off colored diagnostics.
	NO_COLOR        = "NO_COLOR"
	HOME            = "HOME"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	XDG_STATE_HOME  = "XDG_STATE_HOME"
)

// Package config loads piart settings from a TOML file and the environment.
//
// Precedence, lowest to highest: built-in defaults, the TOML file,
// environment variables, then command-line flags applied by the caller.
//
// Example file:
//
//	[view]
//	start = 0
//	count = 1000
//	width = 50
//	cell_size = 12
//
//	[palette]
//	preset = "pastel"
//	colors = { "5" = "#06b6d4" }
//
//	[generator]
//	provider = "openai"
//	api_key_env = "MY_OPENAI_KEY"
//	timeout = "20s"
//
//	[log]
//	level = "debug"
package config

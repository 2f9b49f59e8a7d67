// Package config loads, normalizes, and validates the TOML
// configuration file controlling transcript acquisition.
package config

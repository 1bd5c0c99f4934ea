// Package config loads application settings from defaults, an optional YAML
// file and LEARNCARDS_* environment variables, and validates them before any
// component is built from them.
package config

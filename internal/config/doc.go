// Package config loads the arbor CLI configuration from defaults, an optional YAML file,
// ARBOR_* environment variables and bound command-line flags.
package config

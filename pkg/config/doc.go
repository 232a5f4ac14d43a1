// Package config handles configuration management for dotrig.
// It supports loading configuration from multiple sources including
// an embedded TOML defaults file, a dotrig.toml at the root of the source
// tree, the invoking user's config file, environment variables, and
// command-line flags, merged in that order with koanf.
package config

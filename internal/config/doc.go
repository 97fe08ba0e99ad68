// Package config provides configuration structures and utilities for genix.
// It defines the generation options, the .genix YAML file with its named
// profiles, and the XDG directories used for the configuration file and the
// wordlist catalog.
package config

// Package config loads, normalizes, and validates companyscout configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// COMPANYSCOUT_REGISTRY_URL. The Config type centralizes every knob the CLI
// needs: output and cache directories, scraper pacing, registry endpoints and
// match policy, and the token-merge thresholds used for deduplication keys.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

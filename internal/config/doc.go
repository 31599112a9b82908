// Package config loads, normalizes, and validates ytcaptions configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// YTCAPTIONS_PROXY. The Config type centralizes every knob the CLI and the
// transcript client need: platform origin, cookie sources, language
// preferences and log routing.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical language codes, and clear validation errors.
package config

// Package config loads, normalizes, and validates the tracktoo configuration
// file. Values come from TOML with repository defaults filled in first, then
// environment overrides for portal credentials so tokens can stay out of the
// file. All path fields are expanded and absolute after Load.
package config

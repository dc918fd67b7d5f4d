// Package config loads, normalizes, and validates the fieldlens TOML
// configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/fieldlens/config.toml, then a project-local fieldlens.toml.
// Missing files fall back to defaults so read-only commands work out of the
// box. The vision API key may come from the environment
// (FIELDLENS_API_KEY, then OPENROUTER_API_KEY) instead of the file.
package config

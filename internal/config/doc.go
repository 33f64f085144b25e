// SPDX-License-Identifier: MPL-2.0

// Package config handles tool configuration using Viper with TOML files.
//
// Configuration is loaded from ~/.config/rbd/config.toml (or XDG equivalent
// on Linux, ~/Library/Application Support/rbd/config.toml on macOS,
// %APPDATA%\rbd\config.toml on Windows). Every key has a default, so the
// tool works without any config file; environment variables with the RBD_
// prefix override file values.
package config

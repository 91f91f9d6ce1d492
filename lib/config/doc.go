// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the driftline
// CLI.
//
// Configuration is loaded from a single file specified by either the
// DRIFTLINE_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There are no fallbacks, no ~/.config
// discovery, and no automatic file search. This ensures deterministic,
// auditable configuration with no hidden overrides.
//
// The one exception is the token: the DRIFTLINE_TOKEN environment
// variable, when set, overrides the file's token value so credentials
// can stay out of config files checked into dotfile repos.
//
// Key exports:
//
//   - [Config] -- client settings plus the [OAuthConfig] app identity
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other driftline packages.
package config

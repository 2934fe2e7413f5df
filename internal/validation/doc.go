// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator and translates field
// failures into short human-readable messages. It is used to check the loaded
// configuration and the per-component settings (community detection,
// preference coefficients, snapshot stores) before any work starts.
//
// # Quick Start
//
//	type Settings struct {
//	    Resolution float64 `validate:"finite,gt=0"`
//	    MaxLevels  int     `validate:"gte=1"`
//	}
//
//	if verr := validation.ValidateStruct(&s); verr != nil {
//	    return fmt.Errorf("invalid settings: %w", verr)
//	}
//
// # Custom Tags
//
//   - finite: float fields must not be NaN or infinite
//
// # Error Handling
//
// ValidateStruct returns nil or a *StructError. Always compare the returned
// pointer against nil before wrapping it in an error value.
//
// # Thread Safety
//
// GetValidator initializes the validator once with sync.Once; the instance
// caches struct metadata and is safe for concurrent use.
package validation

// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// SourceKey fingerprints the platform's source files and the loader options.
// A touched or replaced file changes the key.
func SourceKey(platform, dataDir string, opts Options) (string, error) {
	paths, err := sourcePaths(filepath.Join(dataDir, platform))
	if err != nil {
		return "", err
	}

	d := xxhash.New()
	_, _ = fmt.Fprintf(d, "%s\x00", platform)
	for _, name := range []string{PlayersFile, PurchasesFile, HistoryFile} {
		info, err := os.Stat(paths[name])
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrMissingFile, paths[name])
		}
		_, _ = fmt.Fprintf(d, "%s\x00%d\x00%d\x00", name, info.Size(), info.ModTime().UnixNano())
	}
	_, _ = fmt.Fprintf(d, "%t\x00%t\x00%d\x00%d", opts.RequireLibrary, opts.RequireHistory, opts.SampleSize, opts.Seed)

	return fmt.Sprintf("%s:%016x", platform, d.Sum64()), nil
}

// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package builder

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/gamematch/internal/profile"
	"github.com/tomtom215/gamematch/internal/similarity"
)

// Fingerprint returns a stable hex key identifying a build's inputs: the
// profiles in order (ids, sorted items, sorted milestones), the preference
// coefficients, and the zero-weight policy.
func Fingerprint(profiles []*profile.Profile, prefs similarity.PreferenceWeights, keepZero bool) string {
	d := xxhash.New()
	var buf [8]byte

	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	writeString := func(s string) {
		writeUint(uint64(len(s)))
		_, _ = d.WriteString(s)
	}

	writeUint(uint64(len(profiles)))
	for _, p := range profiles {
		writeString(p.ID)

		items := p.Items.Sorted()
		writeUint(uint64(len(items)))
		for _, it := range items {
			writeUint(uint64(it))
		}

		milestones := p.Milestones.Sorted()
		writeUint(uint64(len(milestones)))
		for _, m := range milestones {
			writeString(m)
		}
	}

	writeUint(math.Float64bits(prefs.Items))
	writeUint(math.Float64bits(prefs.Milestones))
	if keepZero {
		writeUint(1)
	} else {
		writeUint(0)
	}

	return fmt.Sprintf("%016x", d.Sum64())
}

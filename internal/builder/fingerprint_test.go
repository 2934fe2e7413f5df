// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

package builder

import (
	"testing"

	"github.com/tomtom215/gamematch/internal/profile"
	"github.com/tomtom215/gamematch/internal/similarity"
)

func TestFingerprint(t *testing.T) {
	t.Parallel()

	prefs := similarity.DefaultPreferences()
	base := Fingerprint(testProfiles(), prefs, true)

	if len(base) != 16 {
		t.Errorf("Fingerprint() = %q, want 16 hex chars", base)
	}
	if again := Fingerprint(testProfiles(), prefs, true); again != base {
		t.Errorf("Fingerprint() not stable: %s vs %s", base, again)
	}

	reordered := testProfiles()
	reordered[0], reordered[1] = reordered[1], reordered[0]

	changedItems := testProfiles()
	changedItems[2] = profile.New("u3", profile.NewItemSet(7, 8), profile.NewMilestoneSet("x"))

	// "ab"+"c" and "a"+"bc" must not collide
	splitA := []*profile.Profile{profile.New("ab", nil, profile.NewMilestoneSet("c"))}
	splitB := []*profile.Profile{profile.New("a", nil, profile.NewMilestoneSet("bc"))}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"order", Fingerprint(reordered, prefs, true), base},
		{"items", Fingerprint(changedItems, prefs, true), base},
		{"preferences", Fingerprint(testProfiles(), similarity.PreferenceWeights{Items: 1, Milestones: 0.5}, true), base},
		{"zero policy", Fingerprint(testProfiles(), prefs, false), base},
		{"length prefixes", Fingerprint(splitA, prefs, true), Fingerprint(splitB, prefs, true)},
	}
	for _, tt := range tests {
		if tt.got == tt.want {
			t.Errorf("%s change did not change the fingerprint", tt.name)
		}
	}
}

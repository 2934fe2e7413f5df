// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

// Package similarity computes the pairwise weight between two user profiles.
//
// The weight blends two Jaccard overlaps, one over owned items and one over
// earned milestones, each scaled by a caller-supplied coefficient:
//
//	weight = prefs.Items * J(items(a), items(b)) + prefs.Milestones * J(milestones(a), milestones(b))
//
// A Jaccard term whose union is empty is defined as 0. No normalization is
// applied to the coefficients, so the weight lies in
// [0, prefs.Items + prefs.Milestones].
//
// All functions are pure and safe for concurrent use.
package similarity

import (
	"fmt"

	"github.com/tomtom215/gamematch/internal/profile"
)

// PreferenceWeights scales the contribution of each overlap factor.
// A coefficient of 0 disables that factor.
type PreferenceWeights struct {
	// Items scales the owned-item overlap.
	Items float64 `koanf:"items" json:"items" validate:"finite,gte=0"`

	// Milestones scales the milestone overlap.
	Milestones float64 `koanf:"milestones" json:"milestones" validate:"finite,gte=0"`
}

// DefaultPreferences returns equal, unit coefficients.
func DefaultPreferences() PreferenceWeights {
	return PreferenceWeights{Items: 1.0, Milestones: 1.0}
}

// Max returns the largest weight these coefficients can produce.
func (p PreferenceWeights) Max() float64 {
	return p.Items + p.Milestones
}

// String returns a compact representation used in cache keys and logs.
func (p PreferenceWeights) String() string {
	return fmt.Sprintf("items=%g,milestones=%g", p.Items, p.Milestones)
}

// Breakdown holds the individual overlap terms behind a weight.
type Breakdown struct {
	// ItemSimilarity is the unscaled Jaccard overlap of owned items (0-1).
	ItemSimilarity float64 `json:"item_similarity"`

	// MilestoneSimilarity is the unscaled Jaccard overlap of milestones (0-1).
	MilestoneSimilarity float64 `json:"milestone_similarity"`

	// Weight is the coefficient-scaled sum of both terms.
	Weight float64 `json:"weight"`
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard[K comparable](a, b map[K]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	// Iterate the smaller set
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	intersection := 0
	for k := range small {
		if _, ok := large[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// Compare returns the full breakdown for two profiles.
func Compare(a, b *profile.Profile, prefs PreferenceWeights) Breakdown {
	items := Jaccard(a.Items, b.Items)
	milestones := Jaccard(a.Milestones, b.Milestones)

	return Breakdown{
		ItemSimilarity:      items,
		MilestoneSimilarity: milestones,
		Weight:              prefs.Items*items + prefs.Milestones*milestones,
	}
}

// Weight returns the blended similarity of two profiles.
func Weight(a, b *profile.Profile, prefs PreferenceWeights) float64 {
	return Compare(a, b, prefs).Weight
}

// WeightByID looks both users up in store and returns their weight.
// It fails with profile.ErrProfileNotFound if either id is absent.
func WeightByID(store profile.Store, idA, idB string, prefs PreferenceWeights) (float64, error) {
	a, err := store.Get(idA)
	if err != nil {
		return 0, err
	}
	b, err := store.Get(idB)
	if err != nil {
		return 0, err
	}
	return Weight(a, b, prefs), nil
}

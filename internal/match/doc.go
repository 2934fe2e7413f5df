// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

/*
Package match ranks candidate partners for one user.

A Ranker combines the similarity graph, the community assignment produced by
internal/community and the profile store. For a user it returns two lists:

  - SameCommunity: neighbours sharing the user's community label
  - OtherCommunities: neighbours from every other community

Candidates are the user's graph neighbours whose edge weight is greater than
Options.MinWeight. Each list is sorted by weight, highest first, with ties
broken by ascending user id, and truncated to Options.Limit entries.

Every Match carries the per-factor overlaps as whole percentages (0-100) so a
front end can render them directly:

	Game Similarity: 67%
	Achievement Similarity: 25%

# Errors

An id missing from the profile store fails with profile.ErrProfileNotFound.
An id known to the store but absent from the assignment fails with
community.ErrUnassignedVertex.

# Thread Safety

A Ranker only reads its inputs and is safe for concurrent use.
*/
package match

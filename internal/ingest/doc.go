// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

/*
Package ingest turns a platform's CSV export into user profiles.

A platform directory holds three files:

	<data_dir>/<platform>/players.csv          playerid[,nickname][,country],...
	<data_dir>/<platform>/purchased_games.csv  playerid,library
	<data_dir>/<platform>/history.csv          playerid,achievementid,...

The files are read through an in-process DuckDB connection with
read_csv_auto, so column types and delimiters are detected per file. The
library column is a bracketed integer list such as "[32, 3726]" and is decoded
as JSON. Optional columns (nickname, country) are used when present.

Every player in players.csv yields one profile. Players without purchases get
an empty item set and players without history an empty milestone set. Rows in
the other two files that name unknown players are ignored.

# Filtering and Sampling

Options.RequireLibrary and Options.RequireHistory drop players whose item or
milestone set is empty. When Options.SampleSize is positive and smaller than
the remaining population, a uniform sample is drawn with a generator seeded
from Options.Seed. Players are ordered by id before and after sampling, so the
same files and options always produce the same profiles in the same order.

# Caching

SourceKey fingerprints the three files (size and modification time) together
with the options. The batch runner uses it as the snapshot key for processed
profiles.
*/
package ingest

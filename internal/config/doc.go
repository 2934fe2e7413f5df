// GameMatch - Player Community Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamematch

/*
Package config loads the GameMatch batch configuration.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Struct defaults (see Default)
 2. A YAML file: $CONFIG_PATH, else the first of config.yaml, config.yml,
    /etc/gamematch/config.yaml, /etc/gamematch/config.yml that exists
 3. Environment variables prefixed with GAMEMATCH_

In environment variable names a double underscore separates nesting levels and
everything is lower-cased, so GAMEMATCH_COMMUNITY__MAX_LEVELS=8 sets
community.max_levels.

# Sections

  - platform: name (steam, xbox, playstation) and data_dir
  - ingest: require_library, require_history, sample_size, seed, threads
  - preferences: items and milestones coefficients
  - builder: workers, keep_zero_weight
  - community: resolution, max_levels, max_passes, min_gain
  - snapshot: backend (none, memory, badger), path, ttl, capacity
  - match: user_id, limit, min_weight
  - logging: level, format, caller, timestamp, file (path, max_size_mb,
    max_age_days, max_backups, compress)
  - metrics: textfile

# Example

	platform:
	  name: steam
	  data_dir: /data/gamematch
	ingest:
	  require_library: true
	  require_history: true
	  sample_size: 1000
	snapshot:
	  backend: badger
	  path: /data/gamematch/snapshots
	match:
	  user_id: "76561198000000000"

# Validation

Field rules are declared as validator tags on each section and checked with
internal/validation. Validate adds the checks that span sections. Warnings
reports settings that are legal but almost certainly unintended.
*/
package config

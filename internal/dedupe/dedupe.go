package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read-mostly lookups. Using a centralized singleflight.Group
// ensures only one database query runs for a given key while other callers
// wait for the result.

import "golang.org/x/sync/singleflight"

// RosterGroup deduplicates character roster queries (key "characters").
var RosterGroup singleflight.Group

// MatchesGroup deduplicates recent-match listings (key "recent").
var MatchesGroup singleflight.Group

package jobs

import "strings"

// Filter keys understood by the job list.
const (
	KeySearch     = "search"
	KeySkills     = "skills"
	KeyDatePosted = "datePosted"
	KeyJobType    = "jobType"
	KeyWorkMode   = "workMode"
	KeyLocation   = "location"
	KeyMatchScore = "matchScore"
)

// Match score buckets.
const (
	MatchHigh   = "high"
	MatchMedium = "medium"
)

// Keys lists every filter key in display order.
var Keys = []string{KeySearch, KeySkills, KeyDatePosted, KeyJobType, KeyWorkMode, KeyLocation, KeyMatchScore}

// Filters is a sparse set of constraints on the job list. A missing key means no constraint.
type Filters map[string]string

// IsKey reports whether key is a known filter key.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set stores value under key. Unknown keys and blank values are ignored.
func (f Filters) Set(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" || !IsKey(key) {
		return
	}
	f[key] = value
}

// Get returns the trimmed value for key.
func (f Filters) Get(key string) string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f[key])
}

// FromLookup builds filters from a lookup function such as url.Values.Get.
func FromLookup(lookup func(string) string) Filters {
	f := Filters{}
	for _, key := range Keys {
		f.Set(key, lookup(key))
	}
	return f
}

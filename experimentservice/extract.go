package experimentservice

import (
	"fmt"
	"sort"
	"strings"
)

// ExtractGenotypeIDs walks an arbitrary decoded JSON structure and collects
// candidate genotype ids: for every map key whose lower-cased form contains
// "genotype", sequence values contribute the string form of every truthy
// element and scalar values contribute their string form. The walk recurses
// into every map value and every map element of sequences regardless of key
// name. The result is deduplicated; order is not guaranteed.
//
// The walk has no depth limit. Payloads come from the authenticated platform
// API, so pathological nesting is an accepted risk for now.
func ExtractGenotypeIDs(data any) []string {
	seen := map[string]struct{}{}
	collectGenotypeIDs(data, seen)

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids
}

func collectGenotypeIDs(data any, seen map[string]struct{}) {
	m, ok := data.(map[string]any)
	if !ok {
		return
	}
	for key, value := range m {
		if strings.Contains(strings.ToLower(key), "genotype") {
			switch v := value.(type) {
			case []any:
				for _, item := range v {
					if truthy(item) {
						seen[stringify(item)] = struct{}{}
					}
				}
				continue
			case map[string]any:
				// fall through to the recursive walk below
			default:
				seen[stringify(value)] = struct{}{}
				continue
			}
		}
		switch v := value.(type) {
		case map[string]any:
			collectGenotypeIDs(v, seen)
		case []any:
			for _, item := range v {
				if inner, ok := item.(map[string]any); ok {
					collectGenotypeIDs(inner, seen)
				}
			}
		}
	}
}

// ExtractTrialID walks an arbitrary decoded JSON structure and returns the
// string form of the first value whose key's lower-cased form contains both
// "trial" and "id", or equals "trialid". Returns "" when no key matches at
// any level.
//
// Go maps have no document order, so the walk is made deterministic: at each
// level every direct key match is considered before any nested map is
// descended into, and candidates are visited in sorted key order. Repeated
// calls on the same payload always resolve the same trial id.
func ExtractTrialID(data any) string {
	m, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		lower := strings.ToLower(key)
		if lower == "trialid" || (strings.Contains(lower, "trial") && strings.Contains(lower, "id")) {
			return stringify(m[key])
		}
	}
	for _, key := range keys {
		if inner, ok := m[key].(map[string]any); ok {
			if trialID := ExtractTrialID(inner); trialID != "" {
				return trialID
			}
		}
	}
	return ""
}

// truthy mirrors the filtering applied to sequence elements: nil, empty
// strings, zero numbers, and false are dropped.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integral values without the
		// trailing ".0" so ids round-trip cleanly.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

package experimentservice

import (
	"sort"
	"testing"
)

func TestExtractGenotypeIDs(t *testing.T) {
	t.Run("list under genotype key", func(t *testing.T) {
		data := map[string]any{
			"genotypeIds": []any{"G1", "G2", "", nil},
		}
		got := sorted(ExtractGenotypeIDs(data))
		want := []string{"G1", "G2"}
		assertStrings(t, got, want)
	})

	t.Run("scalar under genotype key", func(t *testing.T) {
		data := map[string]any{
			"genotype": "G7",
		}
		assertStrings(t, ExtractGenotypeIDs(data), []string{"G7"})
	})

	t.Run("numeric ids render without decimal suffix", func(t *testing.T) {
		data := map[string]any{
			"genotypeIds": []any{float64(42), float64(7)},
		}
		got := sorted(ExtractGenotypeIDs(data))
		assertStrings(t, got, []string{"42", "7"})
	})

	t.Run("nested structures are walked", func(t *testing.T) {
		data := map[string]any{
			"observations": []any{
				map[string]any{
					"plot": map[string]any{
						"genotypeId": "G3",
					},
				},
			},
			"meta": map[string]any{
				"genotypeRef": "G4",
			},
		}
		got := sorted(ExtractGenotypeIDs(data))
		assertStrings(t, got, []string{"G3", "G4"})
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		data := map[string]any{
			"genotypeIds": []any{"G1", "G1"},
			"inner": map[string]any{
				"genotype": "G1",
			},
		}
		assertStrings(t, ExtractGenotypeIDs(data), []string{"G1"})
	})

	t.Run("genotype map value is recursed not stringified", func(t *testing.T) {
		data := map[string]any{
			"genotypeInfo": map[string]any{
				"genotypeId": "G9",
			},
		}
		assertStrings(t, ExtractGenotypeIDs(data), []string{"G9"})
	})

	t.Run("non-map inputs yield nothing", func(t *testing.T) {
		for _, input := range []any{nil, "text", float64(3), []any{"a"}, true} {
			if got := ExtractGenotypeIDs(input); len(got) != 0 {
				t.Fatalf("expected no ids for %v, got %v", input, got)
			}
		}
	})

	t.Run("deeply nested structures", func(t *testing.T) {
		assertStrings(t, ExtractGenotypeIDs(deeplyNested(300)), []string{"G-deep"})
	})
}

func TestExtractTrialID(t *testing.T) {
	t.Run("direct key", func(t *testing.T) {
		data := map[string]any{"trialId": "T1"}
		if got := ExtractTrialID(data); got != "T1" {
			t.Fatalf("expected T1, got %q", got)
		}
	})

	t.Run("variant key names", func(t *testing.T) {
		for _, key := range []string{"trial_id", "TrialID", "parentTrialId"} {
			data := map[string]any{key: "T2"}
			if got := ExtractTrialID(data); got != "T2" {
				t.Fatalf("key %q: expected T2, got %q", key, got)
			}
		}
	})

	t.Run("nested match", func(t *testing.T) {
		data := map[string]any{
			"context": map[string]any{
				"trial": map[string]any{
					"trialId": "T3",
				},
			},
		}
		if got := ExtractTrialID(data); got != "T3" {
			t.Fatalf("expected T3, got %q", got)
		}
	})

	t.Run("numeric id", func(t *testing.T) {
		data := map[string]any{"trialId": float64(12)}
		if got := ExtractTrialID(data); got != "12" {
			t.Fatalf("expected 12, got %q", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		data := map[string]any{"name": "x", "nested": map[string]any{"id": "y"}}
		if got := ExtractTrialID(data); got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
	})

	t.Run("non-map input", func(t *testing.T) {
		if got := ExtractTrialID("trialId"); got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
	})

	t.Run("deeply nested structures", func(t *testing.T) {
		if got := ExtractTrialID(deeplyNested(300)); got != "T-deep" {
			t.Fatalf("expected T-deep, got %q", got)
		}
	})

	t.Run("direct key beats nested candidates", func(t *testing.T) {
		data := map[string]any{
			"aContext": map[string]any{"trialId": "T-nested"},
			"trialId":  "T-direct",
		}
		// Repeated to catch any dependence on map iteration order.
		for i := 0; i < 50; i++ {
			if got := ExtractTrialID(data); got != "T-direct" {
				t.Fatalf("run %d: expected T-direct, got %q", i, got)
			}
		}
	})

	t.Run("sibling direct matches resolve in sorted key order", func(t *testing.T) {
		data := map[string]any{
			"trialId":       "T-b",
			"parentTrialId": "T-a",
		}
		for i := 0; i < 50; i++ {
			if got := ExtractTrialID(data); got != "T-a" {
				t.Fatalf("run %d: expected T-a, got %q", i, got)
			}
		}
	})
}

// deeplyNested wraps a matching leaf in depth levels of single-key maps.
func deeplyNested(depth int) any {
	data := any(map[string]any{
		"genotypeId": "G-deep",
		"trialId":    "T-deep",
	})
	for i := 0; i < depth; i++ {
		data = map[string]any{"level": data}
	}
	return data
}

func sorted(s []string) []string {
	sort.Strings(s)
	return s
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

package trialtypes

import (
	"encoding/json"
	"testing"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func TestFilterNodeMarshal(t *testing.T) {
	t.Run("empty groups keep their filters array", func(t *testing.T) {
		got := marshal(t, DefaultFilter())
		want := `{"mode":"and","filters":[{"mode":"and","filters":[]},{"mode":"or","filters":[]}]}`
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	})

	t.Run("leaf nodes drop group fields", func(t *testing.T) {
		got := marshal(t, EqOp("status", "active"))
		want := `{"key":"status","op":{"$eq":"active"}}`
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	})

	t.Run("text operator shape", func(t *testing.T) {
		got := marshal(t, TextOp("name", "contains", "wheat"))
		want := `{"key":"name","op":{"$text":{"mode":"contains","value":"wheat"}}}`
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	})
}

func TestNameFilter(t *testing.T) {
	t.Run("substring", func(t *testing.T) {
		f := NameFilter("wheat", false)
		leaf := f.Filters[1].Filters[0]
		op := leaf.Op.(map[string]any)["$text"].(map[string]any)
		if op["mode"] != "contains" || op["value"] != "wheat" {
			t.Fatalf("unexpected op %v", op)
		}
	})

	t.Run("exact", func(t *testing.T) {
		f := NameFilter("wheat", true)
		leaf := f.Filters[1].Filters[0]
		op := leaf.Op.(map[string]any)["$text"].(map[string]any)
		if op["mode"] != "eq" {
			t.Fatalf("unexpected op %v", op)
		}
	})
}

func TestSearchCriteriaBuildFilter(t *testing.T) {
	criteria := SearchCriteria{
		Name:          "wheat",
		Description:   "yield",
		Status:        "active",
		CreatedAfter:  "2026-01-01",
		CreatedBefore: "2026-06-30",
		Tags:          []string{"north", "south"},
	}

	f := criteria.BuildFilter()
	if f.Mode != "and" || len(f.Filters) != 2 {
		t.Fatalf("unexpected root %+v", f)
	}

	andGroup := f.Filters[0]
	orGroup := f.Filters[1]

	// status + createdAt bounds + two tags
	if len(andGroup.Filters) != 4 {
		t.Fatalf("expected 4 and-leaves, got %d", len(andGroup.Filters))
	}
	// name + description
	if len(orGroup.Filters) != 2 {
		t.Fatalf("expected 2 or-leaves, got %d", len(orGroup.Filters))
	}

	keys := map[string]int{}
	for _, leaf := range andGroup.Filters {
		keys[leaf.Key]++
	}
	if keys["status"] != 1 || keys["createdAt"] != 2 || keys["tags"] != 2 {
		t.Fatalf("unexpected and-group keys %v", keys)
	}
}

func TestSearchCriteriaEmpty(t *testing.T) {
	f := SearchCriteria{}.BuildFilter()
	got := marshal(t, f)
	want := marshal(t, DefaultFilter())
	if got != want {
		t.Fatalf("empty criteria should equal the default filter: %s vs %s", got, want)
	}
}

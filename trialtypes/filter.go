package trialtypes

import "encoding/json"

// FilterNode is one node of the boolean filter tree the platform's list
// endpoints accept as a query parameter. A node is either a group
// (Mode "and"/"or" with child Filters) or a leaf (Key plus Op).
type FilterNode struct {
	Mode    string       `json:"mode,omitempty"`
	Filters []FilterNode `json:"filters,omitempty"`
	Key     string       `json:"key,omitempty"`
	Op      any          `json:"op,omitempty"`
}

// MarshalJSON keeps an empty Filters slice as [] rather than dropping it; the
// platform rejects group nodes without a filters array.
func (n FilterNode) MarshalJSON() ([]byte, error) {
	type leaf struct {
		Key string `json:"key"`
		Op  any    `json:"op"`
	}
	type group struct {
		Mode    string       `json:"mode"`
		Filters []FilterNode `json:"filters"`
	}
	if n.Key != "" {
		return json.Marshal(leaf{Key: n.Key, Op: n.Op})
	}
	f := n.Filters
	if f == nil {
		f = []FilterNode{}
	}
	return json.Marshal(group{Mode: n.Mode, Filters: f})
}

// TextOp builds a `$text` operator leaf. Mode is "eq" for exact matching or
// "contains" for substring matching.
func TextOp(key, mode, value string) FilterNode {
	return FilterNode{
		Key: key,
		Op: map[string]any{
			"$text": map[string]any{"mode": mode, "value": value},
		},
	}
}

// EqOp builds a `$eq` operator leaf.
func EqOp(key string, value any) FilterNode {
	return FilterNode{Key: key, Op: map[string]any{"$eq": value}}
}

// GteOp builds a `$gte` operator leaf.
func GteOp(key string, value any) FilterNode {
	return FilterNode{Key: key, Op: map[string]any{"$gte": value}}
}

// LteOp builds a `$lte` operator leaf.
func LteOp(key string, value any) FilterNode {
	return FilterNode{Key: key, Op: map[string]any{"$lte": value}}
}

// DefaultFilter returns the empty filter tree the platform UI sends: an AND
// root with an empty AND group and an empty OR group.
func DefaultFilter() FilterNode {
	return FilterNode{
		Mode: "and",
		Filters: []FilterNode{
			{Mode: "and", Filters: []FilterNode{}},
			{Mode: "or", Filters: []FilterNode{}},
		},
	}
}

// SearchCriteria carries the supported multi-criterion search fields. Name and
// Description match as substrings in the OR group; the rest constrain the AND
// group.
type SearchCriteria struct {
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Status        any      `json:"status,omitempty"`
	CreatedAfter  string   `json:"created_after,omitempty"`
	CreatedBefore string   `json:"created_before,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// BuildFilter lowers the criteria into the platform's filter tree, mirroring
// how the web UI distributes criteria between the AND and OR groups.
func (c SearchCriteria) BuildFilter() FilterNode {
	andGroup := FilterNode{Mode: "and", Filters: []FilterNode{}}
	orGroup := FilterNode{Mode: "or", Filters: []FilterNode{}}

	if c.Name != "" {
		orGroup.Filters = append(orGroup.Filters, TextOp("name", "contains", c.Name))
	}
	if c.Description != "" {
		orGroup.Filters = append(orGroup.Filters, TextOp("description", "contains", c.Description))
	}
	if c.Status != nil {
		andGroup.Filters = append(andGroup.Filters, EqOp("status", c.Status))
	}
	if c.CreatedAfter != "" {
		andGroup.Filters = append(andGroup.Filters, GteOp("createdAt", c.CreatedAfter))
	}
	if c.CreatedBefore != "" {
		andGroup.Filters = append(andGroup.Filters, LteOp("createdAt", c.CreatedBefore))
	}
	for _, tag := range c.Tags {
		andGroup.Filters = append(andGroup.Filters, TextOp("tags", "contains", tag))
	}

	return FilterNode{Mode: "and", Filters: []FilterNode{andGroup, orGroup}}
}

// NameFilter builds the tree for a plain name search, exact or substring.
func NameFilter(term string, exact bool) FilterNode {
	mode := "contains"
	if exact {
		mode = "eq"
	}
	return FilterNode{
		Mode: "and",
		Filters: []FilterNode{
			{Mode: "and", Filters: []FilterNode{}},
			{Mode: "or", Filters: []FilterNode{TextOp("name", mode, term)}},
		},
	}
}

// Package toolregistry exposes every gateway operation as a named callable
// tool with a declared parameter schema, for consumption by automated agents.
package toolregistry

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Tool describes one callable operation in function-calling form.
type Tool struct {
	Type     string       `json:"type"`
	Function FunctionTool `json:"function"`
}

// FunctionTool carries the name, docstring, and JSON-schema parameters of a
// tool.
type FunctionTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolCall is one invocation request: a tool name plus its JSON arguments.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// Args wraps a decoded JSON argument object with typed accessors. JSON
// numbers arrive as float64; the accessors coerce the common cases.
type Args map[string]any

// String returns the named argument as a string, or def when absent.
func (a Args) String(key, def string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Int returns the named argument as an int, or def when absent or
// non-numeric.
func (a Args) Int(key string, def int) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Bool returns the named argument as a bool, or def when absent.
func (a Args) Bool(key string, def bool) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// StringSlice returns the named argument as a string slice. A lone string
// becomes a one-element slice.
func (a Args) StringSlice(key string) []string {
	switch v := a[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else if item != nil {
				out = append(out, fmt.Sprintf("%v", item))
			}
		}
		return out
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// Object returns the named argument as a map, or nil when absent.
func (a Args) Object(key string) map[string]any {
	if m, ok := a[key].(map[string]any); ok {
		return m
	}
	return nil
}

// Decode remarshals the named object argument into dst, for typed argument
// structures like filter trees and search criteria.
func (a Args) Decode(key string, dst any) error {
	v, ok := a[key]
	if !ok || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("invalid %s argument: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid %s argument: %w", key, err)
	}
	return nil
}

// StringMap returns the named argument as a map of strings (sort specs).
func (a Args) StringMap(key string) map[string]string {
	m, ok := a[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

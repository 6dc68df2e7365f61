// Package loosemap reads fields out of decoded JSON objects whose schema is
// not under our control. Every accessor returns a zero value instead of failing.
package loosemap

import (
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// String returns the first non-empty string among keys, trimmed.
func String(src map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := src[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// Int returns the first key holding a number or numeric string.
func Int(src map[string]any, keys ...string) (int, bool) {
	f, ok := Float(src, keys...)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// IntOr is Int with a default.
func IntOr(src map[string]any, fallback int, keys ...string) int {
	if v, ok := Int(src, keys...); ok {
		return v
	}
	return fallback
}

func Float(src map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := toFloat(src[key]); ok {
			return v, true
		}
	}
	return 0, false
}

// Raw returns the untouched value of the first present, non-nil key.
func Raw(src map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := src[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func Bool(src map[string]any, keys ...string) bool {
	for _, key := range keys {
		switch v := src[key].(type) {
		case bool:
			return v
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return parsed
			}
		case float64:
			return v != 0
		}
	}
	return false
}

// Map returns the first key holding an object. A one-element array of objects,
// which is how reference fields come back once expanded, is unwrapped.
func Map(src map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if m := AsMap(src[key]); m != nil {
			return m
		}
	}
	return nil
}

func AsMap(raw any) map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) == 0 {
			return nil
		}
		m, _ := v[0].(map[string]any)
		return m
	default:
		return nil
	}
}

// Strings accepts an array of strings or a comma separated string.
func Strings(src map[string]any, key string) []string {
	var parts []string
	switch v := src[key].(type) {
	case string:
		parts = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// toFloat rejects NaN and infinities so callers fall back to their defaults.
func toFloat(raw any) (float64, bool) {
	f, ok := numeric(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func numeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Decode turns a JSON object into a loose map.
func Decode(raw []byte) (map[string]any, error) {
	var out map[string]any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

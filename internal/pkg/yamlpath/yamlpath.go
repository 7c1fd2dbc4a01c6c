// Package yamlpath reads and writes dotted key paths inside YAML-shaped
// values. It backs `config get` and `config set`.
package yamlpath

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToMap converts any YAML-taggable struct into a nested map.
func ToMap(v interface{}) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]interface{}{}
	}
	return m, nil
}

// FromMap writes a nested map back into a YAML-taggable struct.
func FromMap(m map[string]interface{}, out interface{}) error {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, out)
}

// Get resolves a dotted path like "preferences.theme".
func Get(data interface{}, path string) (interface{}, bool) {
	return traverse(data, splitPath(path))
}

// Set writes value at the dotted path, creating intermediate maps as
// needed. Setting through a non-map value replaces it.
func Set(root map[string]interface{}, path string, value interface{}) error {
	keys := splitPath(path)
	if len(keys) == 0 {
		return fmt.Errorf("empty config path")
	}

	current := root
	for _, key := range keys[:len(keys)-1] {
		next, exists := current[key]
		if !exists {
			child := map[string]interface{}{}
			current[key] = child
			current = child
			continue
		}
		child, isMap := next.(map[string]interface{})
		if !isMap {
			child = map[string]interface{}{}
			current[key] = child
		}
		current = child
	}
	current[keys[len(keys)-1]] = value
	return nil
}

// ParseValue interprets the input as a YAML scalar so "true", "42" and
// "0.5" become typed values; anything unparseable stays a string.
func ParseValue(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil {
		return input
	}
	return parsed
}

// Render formats a resolved value for terminal display.
func Render(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool, int, int64, float64:
		return fmt.Sprintf("%v", v)
	default:
		raw, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return strings.TrimRight(string(raw), "\n")
	}
}

func traverse(data interface{}, keys []string) (interface{}, bool) {
	if len(keys) == 0 {
		return data, true
	}
	node, ok := data.(map[string]interface{})
	if !ok {
		return nil, false
	}
	next, exists := node[keys[0]]
	if !exists {
		return nil, false
	}
	return traverse(next, keys[1:])
}

func splitPath(path string) []string {
	var keys []string
	for _, key := range strings.Split(path, ".") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Package jsonpath resolves a dot-separated path with optional array
// indexes (e.g. "results[0].text") against a JSON document. Used to pull
// the transcript out of backend responses whose shape is configurable.
package jsonpath

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Lookup decodes body and resolves path to a string value. It returns an
// error when the body is not JSON, the path does not resolve, or the value
// at the path is not representable as a string.
func Lookup(body []byte, path string) (string, error) {
	var root interface{}
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("response is not JSON: %w", err)
	}
	return Resolve(root, path)
}

// Resolve walks an already-decoded JSON value.
func Resolve(root interface{}, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	cur := root
	for _, token := range strings.Split(path, ".") {
		key, idxs, err := splitToken(token)
		if err != nil {
			return "", err
		}

		if key != "" {
			m, ok := cur.(map[string]interface{})
			if !ok {
				return "", fmt.Errorf("path %q: %q is not an object", path, token)
			}
			cur, ok = m[key]
			if !ok {
				return "", fmt.Errorf("path %q: field %q missing", path, key)
			}
		}

		for _, idx := range idxs {
			arr, ok := cur.([]interface{})
			if !ok {
				return "", fmt.Errorf("path %q: %q is not an array", path, token)
			}
			if idx < 0 || idx >= len(arr) {
				return "", fmt.Errorf("path %q: index %d out of range", path, idx)
			}
			cur = arr[idx]
		}
	}

	switch v := cur.(type) {
	case string:
		return v, nil
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("path %q: value is not a string", path)
	}
}

// splitToken parses "key[0][1]" into the key and its indexes.
func splitToken(token string) (string, []int, error) {
	if token == "" {
		return "", nil, fmt.Errorf("empty path token")
	}
	br := strings.IndexByte(token, '[')
	if br == -1 {
		return token, nil, nil
	}

	key := token[:br]
	rest := token[br:]
	var idxs []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("invalid index syntax in %q", token)
		}
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return "", nil, fmt.Errorf("missing ] in %q", token)
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, fmt.Errorf("invalid index in %q: %w", token, err)
		}
		idxs = append(idxs, n)
		rest = rest[end+1:]
	}
	return key, idxs, nil
}

package models

// StringField returns data[key] when it holds a string, "" otherwise.
func StringField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

// StringSliceField returns the string elements of data[key]. Nulls and other
// non-string elements are dropped; a missing or non-array value yields nil.
func StringSliceField(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

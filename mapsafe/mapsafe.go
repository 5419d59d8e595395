package mapsafe

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the value cannot be converted to T, it returns
// the default value. Numeric values are converted between int and float64,
// since YAML and JSON decoding do not agree on which one they produce.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	val, ok := m[key]
	if !ok {
		return defaultValue
	}

	if v, ok := val.(T); ok {
		return v
	}

	switch any(defaultValue).(type) {
	case int:
		if f, ok := val.(float64); ok {
			return any(int(f)).(T)
		}
	case float64:
		if i, ok := val.(int); ok {
			return any(float64(i)).(T)
		}
	}

	return defaultValue
}

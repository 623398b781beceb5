package domain

// Bag is an open-ended key-value payload such as filterState or extraFormData.
// A nil Bag means "not supplied"; an empty, non-nil Bag means "supplied and empty".
type Bag map[string]any

// Get returns the value stored under key and whether the key is present
func (b Bag) Get(key string) (any, bool) {
	if b == nil {
		return nil, false
	}
	value, ok := b[key]
	return value, ok
}

// Clone returns a shallow copy of the bag. Nested values are shared and must be treated as read-only.
func (b Bag) Clone() Bag {
	if b == nil {
		return nil
	}
	out := make(Bag, len(b))
	for key, value := range b {
		out[key] = value
	}
	return out
}

// Merge returns a new bag holding b overlaid with other. Neither input is modified.
func (b Bag) Merge(other Bag) Bag {
	if b == nil && other == nil {
		return nil
	}
	out := make(Bag, len(b)+len(other))
	for key, value := range b {
		out[key] = value
	}
	for key, value := range other {
		out[key] = value
	}
	return out
}

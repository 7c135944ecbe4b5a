package domain

import "slices"

// AddKey returns a copy of keys with k appended, unless k is already present.
func AddKey(keys []Key, k Key) []Key {
	out := slices.Clone(keys)
	if slices.Contains(out, k) {
		return out
	}
	return append(out, k)
}

// RemoveKey returns a copy of keys without any occurrence of k.
func RemoveKey(keys []Key, k Key) []Key {
	return slices.DeleteFunc(slices.Clone(keys), func(x Key) bool { return x == k })
}

// HasKey reports whether k is in keys.
func HasKey(keys []Key, k Key) bool {
	return slices.Contains(keys, k)
}

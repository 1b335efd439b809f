package store

// LanguageEntry is the per-language slice of the metadata blob. The shape is
// owned by the frontend; everything except the keys used for change
// detection and normalization passes through untouched.
type LanguageEntry map[string]interface{}

// Blob maps a language code to its metadata entry. It is replaced wholesale
// on every accepted push, never merged.
type Blob map[string]LanguageEntry

// Hash returns the content hash of the entry, or "" when the frontend did
// not provide one.
func (e LanguageEntry) Hash() string {
	h, _ := e["hash"].(string)
	return h
}

// NativeName returns the language's self-name, falling back to the language
// code itself.
func (e LanguageEntry) NativeName(code string) string {
	if n, ok := e["nativeName"].(string); ok && n != "" {
		return n
	}
	return code
}

// IsRTL reports whether the language is written right to left.
func (e LanguageEntry) IsRTL() bool {
	rtl, _ := e["isRTL"].(bool)
	return rtl
}

// Changed compares two blobs by language set and per-language content hash.
// A push whose blob is unchanged by this measure is acknowledged without
// touching storage.
func Changed(old, updated Blob) bool {
	if len(old) == 0 && len(updated) > 0 {
		return true
	}

	if len(old) != len(updated) {
		return true
	}

	for lang, entry := range updated {
		oldEntry, ok := old[lang]
		if !ok {
			return true
		}
		if oldEntry.Hash() != entry.Hash() {
			return true
		}
	}

	return false
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlob() Blob {
	return Blob{
		"en": LanguageEntry{"nativeName": "English", "isRTL": false, "hash": "abc123"},
		"ar": LanguageEntry{"nativeName": "العربية", "isRTL": true, "hash": "def456"},
	}
}

func TestStore_All_EmptyBeforePush(t *testing.T) {
	s := NewInMemory(nil)

	blob := s.All()

	assert.NotNil(t, blob)
	assert.Empty(t, blob)
	assert.True(t, s.LastUpdate().IsZero())
}

func TestStore_Replace_RoundTrip(t *testing.T) {
	s := NewInMemory(nil)

	changed, err := s.Replace(testBlob())
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, testBlob(), s.All())
	assert.False(t, s.LastUpdate().IsZero())
}

func TestStore_Language_MatchesAll(t *testing.T) {
	s := NewInMemory(nil)

	_, err := s.Replace(testBlob())
	require.NoError(t, err)

	for lang, want := range s.All() {
		got, ok := s.Language(lang)
		require.True(t, ok, "language %s should be present", lang)
		assert.Equal(t, want, got)
	}
}

func TestStore_Language_NotFound(t *testing.T) {
	s := NewInMemory(nil)

	// Before any push
	_, ok := s.Language("en")
	assert.False(t, ok)

	_, err := s.Replace(testBlob())
	require.NoError(t, err)

	// Absent from the pushed blob
	_, ok = s.Language("fr")
	assert.False(t, ok)
}

func TestStore_Replace_Idempotent(t *testing.T) {
	s := NewInMemory(nil)

	changed, err := s.Replace(testBlob())
	require.NoError(t, err)
	assert.True(t, changed)

	before := s.All()

	changed, err = s.Replace(testBlob())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, s.All())
}

func TestStore_Replace_LastWriteWins(t *testing.T) {
	s := NewInMemory(nil)

	first := Blob{"en": LanguageEntry{"hash": "aaa"}}
	second := Blob{"fr": LanguageEntry{"hash": "bbb"}}

	_, err := s.Replace(first)
	require.NoError(t, err)

	changed, err := s.Replace(second)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, second, s.All())
	_, ok := s.Language("en")
	assert.False(t, ok, "previous blob must be fully discarded")
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	s := NewInMemory(nil)

	_, err := s.Replace(testBlob())
	require.NoError(t, err)

	all := s.All()
	all["en"]["hash"] = "mutated"
	delete(all, "ar")

	entry, ok := s.Language("en")
	require.True(t, ok)
	entry["nativeName"] = "mutated"

	assert.Equal(t, testBlob(), s.All(), "mutating a returned blob must not touch the store")
}

func TestStore_Replace_NilBlobBecomesEmpty(t *testing.T) {
	s := NewInMemory(nil)

	_, err := s.Replace(testBlob())
	require.NoError(t, err)

	changed, err := s.Replace(nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, s.All())
}

func TestStore_Open_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, nil)
	require.NoError(t, err)

	_, err = s.Replace(testBlob())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, testBlob(), reopened.All())
	assert.False(t, reopened.LastUpdate().IsZero())
}

func TestChanged(t *testing.T) {
	base := testBlob()

	tests := []struct {
		name string
		old  Blob
		new  Blob
		want bool
	}{
		{"both empty", Blob{}, Blob{}, false},
		{"empty to populated", Blob{}, base, true},
		{"populated to empty", base, Blob{}, true},
		{"identical", base, testBlob(), false},
		{"hash changed", base, Blob{
			"en": LanguageEntry{"hash": "zzz999"},
			"ar": LanguageEntry{"hash": "def456"},
		}, true},
		{"language added", base, Blob{
			"en": LanguageEntry{"hash": "abc123"},
			"ar": LanguageEntry{"hash": "def456"},
			"fr": LanguageEntry{"hash": "fff000"},
		}, true},
		{"language swapped", base, Blob{
			"en": LanguageEntry{"hash": "abc123"},
			"fr": LanguageEntry{"hash": "def456"},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Changed(tt.old, tt.new))
		})
	}
}

func TestLanguageEntry_Accessors(t *testing.T) {
	entry := LanguageEntry{"nativeName": "Deutsch", "isRTL": false, "hash": "abc"}

	assert.Equal(t, "Deutsch", entry.NativeName("de"))
	assert.False(t, entry.IsRTL())
	assert.Equal(t, "abc", entry.Hash())

	// Defaults for an entry the frontend left sparse
	sparse := LanguageEntry{}
	assert.Equal(t, "xx", sparse.NativeName("xx"))
	assert.False(t, sparse.IsRTL())
	assert.Empty(t, sparse.Hash())
}

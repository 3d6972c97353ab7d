package categories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Exact name", "Repairs", "Repairs"},
		{"Name case-insensitive", "repairs", "Repairs"},
		{"Keyword", "plumbing work", "Repairs"},
		{"Keyword inside sentence", "monthly electricity bill", "Utilities"},
		{"Security keyword", "guard salary advance", "Security"},
		{"No match", "miscellaneous stuff", ""},
		{"Empty", "", ""},
		{"Whitespace only", "   ", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Match(Defaults, tc.input))
		})
	}
}

func TestMatchPrefersNameOverKeyword(t *testing.T) {
	cats := []Category{
		{Name: "Water", Keywords: []string{"tanker"}},
		{Name: "Utilities", Keywords: []string{"water"}},
	}
	assert.Equal(t, "Water", Match(cats, "water"))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	cats, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults, cats)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	content := `- name: Gardening
  keywords: [garden, lawn]
- name: Festival
  keywords: [diwali, holi]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewStore(path, nil)
	cats, err := store.Load()
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, []string{"Gardening", "Festival"}, Names(cats))
	assert.Equal(t, "Gardening", Match(cats, "lawn mowing"))
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	store := NewStore(path, nil)
	_, err := store.Load()
	assert.Error(t, err)
}

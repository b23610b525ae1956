package programs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admission-workers/internal/models"
)

// ==========================
// Resolve
// ==========================

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode models.CIPCode
		wantOK   bool
	}{
		{"exact", "data science", 3070, true},
		{"title case", "Data Science", 3070, true},
		{"padded and upper", "  DATA   SCIENCE \t", 3070, true},
		{"fullwidth letters", "Ｄａｔａ Science", 3070, true},
		{"shared code", "business analytics", 3071, true},
		{"parenthesized key", "Information Systems (Business)", 5203, true},
		{"unmapped", "underwater basket weaving", 0, false},
		{"partial name is not fuzzy matched", "data", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := DefaultCatalog().Resolve(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestCIPCode_String(t *testing.T) {
	assert.Equal(t, "3070", models.CIPCode(3070).String())
	assert.Equal(t, "0101", models.CIPCode(101).String())
}

// ==========================
// Bundle and synonym tables
// ==========================

func TestCatalog_BundleExcludesResolvedCode(t *testing.T) {
	cat := DefaultCatalog()
	code, ok := cat.Resolve("Data Science")
	require.True(t, ok)

	bundle := cat.Bundle("Data Science", &code)
	assert.NotEmpty(t, bundle)
	assert.NotContains(t, bundle, code)
	assert.Equal(t, models.CIPCode(3071), bundle[0])
}

func TestCatalog_BundleUnknownProgram(t *testing.T) {
	assert.Empty(t, DefaultCatalog().Bundle("underwater basket weaving", nil))
}

func TestCatalog_SynonymsFallBackToFreeText(t *testing.T) {
	cat := DefaultCatalog()

	assert.Equal(t, []string{"Underwater Basket Weaving"}, cat.Synonyms("Underwater Basket Weaving"))
	assert.Nil(t, cat.Synonyms("   "))
	assert.Contains(t, cat.Synonyms("data science"), "statistics")
}

func TestCatalog_EmptyTables(t *testing.T) {
	cat := NewCatalog(map[string]models.CIPCode{"Data Science": 3070}, nil, nil)

	code, ok := cat.Resolve("data science")
	require.True(t, ok)
	assert.Equal(t, models.CIPCode(3070), code)
	assert.Empty(t, cat.Bundle("data science", nil))
	assert.Equal(t, []string{"data science"}, cat.Synonyms("data science"))
}

func TestCatalog_TablesAreCopied(t *testing.T) {
	bundles := map[string][]models.CIPCode{"x": {1, 2}}
	cat := NewCatalog(nil, bundles, nil)
	bundles["x"][0] = 99

	assert.Equal(t, []models.CIPCode{1, 2}, cat.Bundle("x", nil))

	syn := cat.Synonyms("x")
	syn[0] = "mutated"
	assert.Equal(t, []string{"x"}, cat.Synonyms("x"))
}

func TestCatalog_NewQuery(t *testing.T) {
	cat := DefaultCatalog()

	q := cat.NewQuery("Computer Science")
	require.NotNil(t, q.ResolvedCode)
	assert.Equal(t, models.CIPCode(1107), *q.ResolvedCode)
	assert.Empty(t, q.TitleKeyword)

	q = cat.NewQuery(" Marine Biology ")
	assert.Nil(t, q.ResolvedCode)
	assert.Equal(t, "Marine Biology", q.TitleKeyword)
	assert.Equal(t, " Marine Biology ", q.FreeTextName)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "data science", Normalize("\u0007Data\n Science "))
}

// Package programs maps free-text program names to CIP classification codes
// and holds the related-code and keyword tables used to broaden sparse searches.
package programs

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"admission-workers/internal/models"
)

// Catalog is an immutable set of lookup tables. The zero value resolves nothing
// and yields no bundle codes.
type Catalog struct {
	codes    map[string]models.CIPCode
	bundles  map[string][]models.CIPCode
	synonyms map[string][]string
}

var defaultCatalog = NewCatalog(defaultCodes, defaultBundles, defaultSynonyms)

// DefaultCatalog returns the built-in tables.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// NewCatalog copies the given tables, normalizing their keys. Any table may be nil.
func NewCatalog(codes map[string]models.CIPCode, bundles map[string][]models.CIPCode, synonyms map[string][]string) *Catalog {
	c := &Catalog{
		codes:    make(map[string]models.CIPCode, len(codes)),
		bundles:  make(map[string][]models.CIPCode, len(bundles)),
		synonyms: make(map[string][]string, len(synonyms)),
	}
	for k, v := range codes {
		c.codes[Normalize(k)] = v
	}
	for k, v := range bundles {
		c.bundles[Normalize(k)] = append([]models.CIPCode(nil), v...)
	}
	for k, v := range synonyms {
		c.synonyms[Normalize(k)] = append([]string(nil), v...)
	}
	return c
}

// Resolve looks up the exact canonical name. No fuzzy matching.
func (c *Catalog) Resolve(freeText string) (models.CIPCode, bool) {
	if c == nil {
		return 0, false
	}
	code, ok := c.codes[Normalize(freeText)]
	return code, ok
}

// Bundle returns the related codes for a program, without exclude.
func (c *Catalog) Bundle(freeText string, exclude *models.CIPCode) []models.CIPCode {
	if c == nil {
		return nil
	}
	related := c.bundles[Normalize(freeText)]
	out := make([]models.CIPCode, 0, len(related))
	for _, code := range related {
		if exclude != nil && code == *exclude {
			continue
		}
		out = append(out, code)
	}
	return out
}

// Synonyms returns the keyword candidates for a program. Without a table entry
// the raw free text itself is the only candidate; empty text has none.
func (c *Catalog) Synonyms(freeText string) []string {
	if strings.TrimSpace(freeText) == "" {
		return nil
	}
	if c != nil {
		if kws, ok := c.synonyms[Normalize(freeText)]; ok {
			return append([]string(nil), kws...)
		}
	}
	return []string{freeText}
}

// NewQuery builds the ProgramQuery for a search: the resolved code when one
// exists, the free text as title keyword otherwise.
func (c *Catalog) NewQuery(freeText string) models.ProgramQuery {
	q := models.ProgramQuery{FreeTextName: freeText}
	if code, ok := c.Resolve(freeText); ok {
		q.ResolvedCode = code.Ptr()
		return q
	}
	q.TitleKeyword = strings.TrimSpace(freeText)
	return q
}

// Normalize produces the canonical lookup key: NFKC, control characters
// dropped, whitespace collapsed, lower-cased.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

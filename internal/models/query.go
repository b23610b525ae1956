// internal/models/query.go
package models

import (
	"errors"
	"fmt"
	"strings"
)

// PageSize is the fixed number of records the search collaborator returns per full page.
const PageSize = 100

// CIPCode is a 4-digit program classification code stored without the dot (30.70 -> 3070).
type CIPCode int

func (c CIPCode) String() string {
	return fmt.Sprintf("%04d", int(c))
}

// Ptr returns a pointer to a copy of c.
func (c CIPCode) Ptr() *CIPCode {
	return &c
}

type ProgramQuery struct {
	FreeTextName string   `json:"freeTextName"`
	ResolvedCode *CIPCode `json:"resolvedCode,omitempty"`
	TitleKeyword string   `json:"titleKeyword,omitempty"`
}

type LocationMode string

const (
	LocationAnywhere LocationMode = "anywhere"
	LocationState    LocationMode = "state"
	LocationCity     LocationMode = "city"
	LocationZip      LocationMode = "zip"
)

// RadiusBuckets are the only distances accepted for zip searches.
var RadiusBuckets = []string{"10mi", "25mi", "50mi", "100mi"}

var (
	ErrInvalidLocationMode = errors.New("invalid location mode")
	ErrInvalidRadius       = errors.New("invalid radius")
	ErrMissingLocation     = errors.New("missing location value")
)

type LocationFilter struct {
	Mode    LocationMode `json:"mode"`
	State   string       `json:"state,omitempty"`
	City    string       `json:"city,omitempty"`
	ZipCode string       `json:"zipCode,omitempty"`
	Radius  string       `json:"radius,omitempty"`
}

// Normalize trims every field, upper-cases the state and infers the mode when it was left empty.
func (l LocationFilter) Normalize() LocationFilter {
	out := LocationFilter{
		Mode:    LocationMode(strings.ToLower(strings.TrimSpace(string(l.Mode)))),
		State:   strings.ToUpper(strings.TrimSpace(l.State)),
		City:    strings.TrimSpace(l.City),
		ZipCode: strings.TrimSpace(l.ZipCode),
		Radius:  strings.ToLower(strings.TrimSpace(l.Radius)),
	}
	if out.Mode == "" {
		switch {
		case out.ZipCode != "":
			out.Mode = LocationZip
		case out.City != "":
			out.Mode = LocationCity
		case out.State != "":
			out.Mode = LocationState
		default:
			out.Mode = LocationAnywhere
		}
	}
	return out
}

// Validate enforces that exactly the fields of the selected mode are set.
func (l LocationFilter) Validate() error {
	switch l.Mode {
	case LocationAnywhere:
		if l.State != "" || l.City != "" || l.ZipCode != "" || l.Radius != "" {
			return fmt.Errorf("%w: anywhere takes no location values", ErrInvalidLocationMode)
		}
	case LocationState:
		if l.State == "" {
			return fmt.Errorf("%w: state", ErrMissingLocation)
		}
		if l.City != "" || l.ZipCode != "" || l.Radius != "" {
			return fmt.Errorf("%w: state mode takes only a state", ErrInvalidLocationMode)
		}
	case LocationCity:
		if l.City == "" || l.State == "" {
			return fmt.Errorf("%w: city mode needs city and state", ErrMissingLocation)
		}
		if l.ZipCode != "" || l.Radius != "" {
			return fmt.Errorf("%w: city mode takes no zip", ErrInvalidLocationMode)
		}
	case LocationZip:
		if l.ZipCode == "" || l.Radius == "" {
			return fmt.Errorf("%w: zip mode needs zip code and radius", ErrMissingLocation)
		}
		if l.State != "" || l.City != "" {
			return fmt.Errorf("%w: zip mode takes no state or city", ErrInvalidLocationMode)
		}
		if !validRadius(l.Radius) {
			return fmt.Errorf("%w: %q (allowed %s)", ErrInvalidRadius, l.Radius, strings.Join(RadiusBuckets, ", "))
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLocationMode, l.Mode)
	}
	return nil
}

func validRadius(r string) bool {
	for _, b := range RadiusBuckets {
		if r == b {
			return true
		}
	}
	return false
}

// SearchQuery is one paginated request to the search collaborator.
// At most one of Code and TitleKeyword is set.
type SearchQuery struct {
	Location     LocationFilter `json:"location"`
	Code         *CIPCode       `json:"code,omitempty"`
	TitleKeyword string         `json:"titleKeyword,omitempty"`
	Page         int            `json:"page"`
}

type SearchPage struct {
	Results []InstitutionRecord `json:"results"`
	Total   int                 `json:"total"`
}

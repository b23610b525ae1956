// internal/models/institution.go
package models

// InstitutionRecord is one school as returned by the search collaborator.
// Nil numeric fields mean the upstream value was absent.
type InstitutionRecord struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	City              string         `json:"city"`
	State             string         `json:"state"`
	URL               string         `json:"url,omitempty"`
	Latitude          *float64       `json:"latitude,omitempty"`
	Longitude         *float64       `json:"longitude,omitempty"`
	AdmissionRate     *float64       `json:"admissionRate,omitempty"`
	TuitionInState    *float64       `json:"tuitionInState,omitempty"`
	TuitionOutOfState *float64       `json:"tuitionOutOfState,omitempty"`
	RoomBoard         *float64       `json:"roomBoard,omitempty"`
	OtherOnCampus     *float64       `json:"otherOnCampus,omitempty"`
	BooksSupply       *float64       `json:"booksSupply,omitempty"`
	Programs          []ProgramEntry `json:"programs,omitempty"`
}

type ProgramEntry struct {
	Code            CIPCode `json:"code"`
	Title           string  `json:"title"`
	CredentialLevel *int    `json:"credentialLevel,omitempty"`
}

// DedupKey identifies an institution across repeated queries.
type DedupKey struct {
	Name  string
	State string
}

func (r InstitutionRecord) Key() DedupKey {
	return DedupKey{Name: r.Name, State: r.State}
}

// ResultSet is an ordered collection of records with unique (name, state) keys.
type ResultSet []InstitutionRecord

// ValueOrZero dereferences an optional number, treating absent as 0.
func ValueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

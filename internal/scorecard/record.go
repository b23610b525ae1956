package scorecard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"admission-workers/internal/models"
)

// Upstream field names. The same dotted names are used by the API and by the
// Elasticsearch mirror.
const (
	FieldID                = "id"
	FieldName              = "school.name"
	FieldCity              = "school.city"
	FieldState             = "school.state"
	FieldURL               = "school.school_url"
	FieldLat               = "location.lat"
	FieldLon               = "location.lon"
	FieldAdmissionRate     = "latest.admissions.admission_rate.overall"
	FieldTuitionIn         = "latest.cost.tuition.in_state"
	FieldTuitionOut        = "latest.cost.tuition.out_of_state"
	FieldRoomBoard         = "latest.cost.roomboard.oncampus"
	FieldOtherOnCampus     = "latest.cost.other_on_campus"
	FieldBooksSupply       = "latest.cost.booksupply"
	FieldProgramCode       = "latest.programs.cip_4_digit.code"
	FieldProgramTitle      = "latest.programs.cip_4_digit.title"
	FieldProgramCredential = "latest.programs.cip_4_digit.credential.level"
)

// Fields is the projection requested from the API.
var Fields = []string{
	FieldID,
	FieldName,
	FieldCity,
	FieldState,
	FieldURL,
	FieldLat,
	FieldLon,
	FieldAdmissionRate,
	FieldTuitionIn,
	FieldTuitionOut,
	FieldRoomBoard,
	FieldOtherOnCampus,
	FieldBooksSupply,
	FieldProgramCode,
	FieldProgramTitle,
	FieldProgramCredential,
}

// rawRecord is one result row keyed by dotted field name.
type rawRecord map[string]json.RawMessage

// DecodeRecord converts a raw upstream row. Malformed numbers become absent
// values rather than errors; only a row that is not a JSON object fails.
func DecodeRecord(data []byte) (models.InstitutionRecord, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.InstitutionRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return raw.toModel(), nil
}

func (r rawRecord) toModel() models.InstitutionRecord {
	rec := models.InstitutionRecord{
		Name:              r.str(FieldName),
		City:              r.str(FieldCity),
		State:             r.str(FieldState),
		URL:               r.str(FieldURL),
		Latitude:          r.num(FieldLat),
		Longitude:         r.num(FieldLon),
		AdmissionRate:     r.num(FieldAdmissionRate),
		TuitionInState:    r.num(FieldTuitionIn),
		TuitionOutOfState: r.num(FieldTuitionOut),
		RoomBoard:         r.num(FieldRoomBoard),
		OtherOnCampus:     r.num(FieldOtherOnCampus),
		BooksSupply:       r.num(FieldBooksSupply),
	}
	if id := r.num(FieldID); id != nil {
		rec.ID = int64(*id)
	}

	codes := r.list(FieldProgramCode)
	titles := r.list(FieldProgramTitle)
	levels := r.list(FieldProgramCredential)
	n := len(codes)
	if len(titles) > n {
		n = len(titles)
	}
	for i := 0; i < n; i++ {
		var p models.ProgramEntry
		if i < len(codes) {
			if c, ok := parseCode(codes[i]); ok {
				p.Code = c
			}
		}
		if i < len(titles) {
			p.Title = rawString(titles[i])
		}
		if i < len(levels) {
			if lvl := rawNumber(levels[i]); lvl != nil {
				v := int(*lvl)
				p.CredentialLevel = &v
			}
		}
		rec.Programs = append(rec.Programs, p)
	}
	return rec
}

func (r rawRecord) str(key string) string {
	return rawString(r[key])
}

func (r rawRecord) num(key string) *float64 {
	return rawNumber(r[key])
}

// list accepts either a JSON array or a single scalar.
func (r rawRecord) list(key string) []json.RawMessage {
	v, ok := r[key]
	if !ok || isNull(v) {
		return nil
	}
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		return items
	}
	return []json.RawMessage{trimmed}
}

func isNull(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func rawString(v json.RawMessage) string {
	if isNull(v) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}

// rawNumber reads a JSON number or a finite numeric string. Anything else is
// absent.
func rawNumber(v json.RawMessage) *float64 {
	if isNull(v) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			return &parsed
		}
	}
	return nil
}

// parseCode accepts 3070, "3070" and "30.70".
func parseCode(v json.RawMessage) (models.CIPCode, bool) {
	s := strings.ReplaceAll(rawString(v), ".", "")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return models.CIPCode(n), true
}

package export

import (
	"bytes"
	"encoding/csv"
	"io"

	"admission-workers/internal/models"
)

// Header order is part of the download format.
var Header = []string{
	"Institution",
	"City",
	"State",
	"URL",
	"Tuition (yr)",
	"Living (yr)",
	"Books (yr)",
	"Total (yr)",
	"Total (2y)",
	"Baseline admit",
	"Your admit %",
	"Within budget?",
}

// WriteCSV writes the header followed by one display row per scored row.
func WriteCSV(w io.Writer, rows []models.ScoredRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(record(ToDisplay(r))); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV returns the export as a string, for job variables.
func CSV(rows []models.ScoredRow) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func record(d models.DisplayRow) []string {
	return []string{
		d.Institution,
		d.City,
		d.State,
		d.URL,
		d.Tuition,
		d.Living,
		d.Books,
		d.PerYear,
		d.TwoYear,
		d.Baseline,
		d.AdmitPercent,
		d.WithinBudget,
	}
}

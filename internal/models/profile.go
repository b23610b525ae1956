// internal/models/profile.go
package models

import (
	"errors"
	"fmt"
	"math"
)

// DefaultDocumentScore is used when no SOP/LOR was supplied or scoring failed.
const DefaultDocumentScore = 0.5

var ErrInvalidProfile = errors.New("invalid applicant profile")

type ApplicantProfile struct {
	CGPA          float64  `json:"cgpa"`
	GRE           *int     `json:"gre,omitempty"`
	IELTS         *float64 `json:"ielts,omitempty"`
	DocumentScore float64  `json:"documentScore"`
}

// HasGRE reports whether a positive GRE score was supplied. Zero counts as absent.
func (p ApplicantProfile) HasGRE() bool {
	return p.GRE != nil && *p.GRE > 0
}

// HasIELTS reports whether a positive IELTS band was supplied. Zero counts as absent.
func (p ApplicantProfile) HasIELTS() bool {
	return p.IELTS != nil && *p.IELTS > 0
}

func (p ApplicantProfile) Validate() error {
	if !finite(p.CGPA) || p.CGPA < 0 || p.CGPA > 4.0 {
		return fmt.Errorf("%w: cgpa %.2f outside [0, 4.0]", ErrInvalidProfile, p.CGPA)
	}
	if p.GRE != nil && (*p.GRE < 0 || *p.GRE > 340) {
		return fmt.Errorf("%w: gre %d outside [0, 340]", ErrInvalidProfile, *p.GRE)
	}
	if p.IELTS != nil && (!finite(*p.IELTS) || *p.IELTS < 0 || *p.IELTS > 9.0) {
		return fmt.Errorf("%w: ielts %.1f outside [0, 9.0]", ErrInvalidProfile, *p.IELTS)
	}
	if !finite(p.DocumentScore) || p.DocumentScore < 0 || p.DocumentScore > 1 {
		return fmt.Errorf("%w: documentScore %.2f outside [0, 1]", ErrInvalidProfile, p.DocumentScore)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

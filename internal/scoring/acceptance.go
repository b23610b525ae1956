// Package scoring turns institution records and an applicant profile into
// cost figures and personalized admission probabilities.
package scoring

import (
	"math"

	"admission-workers/internal/models"
)

const (
	// Beta scales how far the profile can shift the baseline in log-odds space.
	Beta = 1.6

	WeightGPA      = 0.40
	WeightGRE      = 0.35
	WeightIELTS    = 0.15
	WeightDocument = 0.10

	defaultBaseline = 0.5
	minBaseline     = 0.02
	maxBaseline     = 0.98
	minProbability  = 0.01
	maxProbability  = 0.99
	logitEpsilon    = 1e-6
)

// Signals holds the normalized applicant signals. Nil means the signal was absent.
type Signals struct {
	GPA      float64  `json:"gpa"`
	GRE      *float64 `json:"gre,omitempty"`
	IELTS    *float64 `json:"ielts,omitempty"`
	Document float64  `json:"document"`
}

// band maps raw in [lo, hi] linearly onto [0, 1], clamped.
func band(raw, lo, hi float64) float64 {
	return clamp((raw-lo)/(hi-lo), 0, 1)
}

func Normalize(p models.ApplicantProfile) Signals {
	s := Signals{
		GPA:      band(p.CGPA, 2.5, 4.0),
		Document: clamp(p.DocumentScore, 0, 1),
	}
	if p.HasGRE() {
		v := band(float64(*p.GRE), 290, 340)
		s.GRE = &v
	}
	if p.HasIELTS() {
		v := band(*p.IELTS, 5.5, 9.0)
		s.IELTS = &v
	}
	return s
}

// Match is the weighted mean of the present signals, renormalized so the
// weights of present signals sum to 1.
func (s Signals) Match() float64 {
	sum := WeightGPA*s.GPA + WeightDocument*s.Document
	weights := WeightGPA + WeightDocument
	if s.GRE != nil {
		sum += WeightGRE * *s.GRE
		weights += WeightGRE
	}
	if s.IELTS != nil {
		sum += WeightIELTS * *s.IELTS
		weights += WeightIELTS
	}
	return sum / weights
}

func Match(p models.ApplicantProfile) float64 {
	return Normalize(p).Match()
}

// Estimate shifts the baseline admission rate by the profile's match score.
// The result is always within [0.01, 0.99]; a match of exactly 0.5 reproduces
// the clamped baseline.
func Estimate(baseline *float64, p models.ApplicantProfile) float64 {
	return EstimateFromMatch(baseline, Match(p))
}

func EstimateFromMatch(baseline *float64, match float64) float64 {
	base := defaultBaseline
	if baseline != nil && !math.IsNaN(*baseline) {
		base = *baseline
	}
	base = clamp(base, minBaseline, maxBaseline)
	z := logit(base) + Beta*(match-0.5)
	return clamp(invLogit(z), minProbability, maxProbability)
}

// clamp maps NaN to lo.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}

func logit(p float64) float64 {
	p = clamp(p, logitEpsilon, 1-logitEpsilon)
	return math.Log(p / (1 - p))
}

func invLogit(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

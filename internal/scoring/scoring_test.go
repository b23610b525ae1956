package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admission-workers/internal/models"
)

const tolerance = 1e-9

func averageProfile() models.ApplicantProfile {
	return models.ApplicantProfile{
		CGPA:          3.25,
		GRE:           models.Int(315),
		IELTS:         models.Float(7.25),
		DocumentScore: 0.5,
	}
}

// ==========================
// Normalization
// ==========================

func TestNormalize_Bands(t *testing.T) {
	s := Normalize(averageProfile())

	assert.InDelta(t, 0.5, s.GPA, tolerance)
	require.NotNil(t, s.GRE)
	assert.InDelta(t, 0.5, *s.GRE, tolerance)
	require.NotNil(t, s.IELTS)
	assert.InDelta(t, 0.5, *s.IELTS, tolerance)
	assert.InDelta(t, 0.5, s.Document, tolerance)
}

func TestNormalize_ClampsAndDropsAbsentSignals(t *testing.T) {
	s := Normalize(models.ApplicantProfile{
		CGPA:          1.0,
		GRE:           models.Int(0),
		IELTS:         nil,
		DocumentScore: 3,
	})

	assert.Equal(t, 0.0, s.GPA)
	assert.Nil(t, s.GRE, "zero GRE is absent")
	assert.Nil(t, s.IELTS)
	assert.Equal(t, 1.0, s.Document)

	s = Normalize(models.ApplicantProfile{CGPA: 4.0, GRE: models.Int(340), IELTS: models.Float(9)})
	assert.Equal(t, 1.0, s.GPA)
	assert.Equal(t, 1.0, *s.GRE)
	assert.Equal(t, 1.0, *s.IELTS)
}

func TestMatch_RenormalizesWeights(t *testing.T) {
	// GPA 1.0 and document 0.0 only: 0.40 / 0.50
	p := models.ApplicantProfile{CGPA: 4.0, DocumentScore: 0}
	assert.InDelta(t, 0.8, Match(p), tolerance)

	// adding a perfect GRE: (0.40 + 0.35) / 0.85
	p.GRE = models.Int(340)
	assert.InDelta(t, 0.75/0.85, Match(p), tolerance)
}

func TestMatch_StaysInUnitInterval(t *testing.T) {
	for _, p := range []models.ApplicantProfile{
		{},
		{CGPA: 4, GRE: models.Int(340), IELTS: models.Float(9), DocumentScore: 1},
		{CGPA: 0, GRE: models.Int(200), IELTS: models.Float(1), DocumentScore: 0},
	} {
		m := Match(p)
		assert.GreaterOrEqual(t, m, 0.0)
		assert.LessOrEqual(t, m, 1.0)
	}
}

// ==========================
// Estimate
// ==========================

func TestEstimate_AverageProfileReproducesBaseline(t *testing.T) {
	for _, base := range []float64{0.02, 0.1, 0.3, 0.5, 0.77, 0.98} {
		got := Estimate(models.Float(base), averageProfile())
		assert.InDelta(t, base, got, 1e-9, "base %.2f", base)
	}
}

func TestEstimate_AverageProfileClampsExtremeBaseline(t *testing.T) {
	assert.InDelta(t, 0.02, Estimate(models.Float(0.001), averageProfile()), 1e-9)
	assert.InDelta(t, 0.98, Estimate(models.Float(0.999), averageProfile()), 1e-9)
}

func TestEstimate_MissingBaselineDefaultsToHalf(t *testing.T) {
	assert.InDelta(t, 0.5, Estimate(nil, averageProfile()), 1e-9)
	assert.InDelta(t, 0.5, Estimate(models.Float(math.NaN()), averageProfile()), 1e-9)
}

func TestEstimate_Monotonic(t *testing.T) {
	base := models.Float(0.4)
	tests := []struct {
		name string
		lo   models.ApplicantProfile
		hi   models.ApplicantProfile
	}{
		{
			name: "gpa",
			lo:   models.ApplicantProfile{CGPA: 3.0, DocumentScore: 0.5},
			hi:   models.ApplicantProfile{CGPA: 3.5, DocumentScore: 0.5},
		},
		{
			name: "gre",
			lo:   models.ApplicantProfile{CGPA: 3.0, GRE: models.Int(300), DocumentScore: 0.5},
			hi:   models.ApplicantProfile{CGPA: 3.0, GRE: models.Int(320), DocumentScore: 0.5},
		},
		{
			name: "ielts",
			lo:   models.ApplicantProfile{CGPA: 3.0, IELTS: models.Float(6), DocumentScore: 0.5},
			hi:   models.ApplicantProfile{CGPA: 3.0, IELTS: models.Float(8), DocumentScore: 0.5},
		},
		{
			name: "document",
			lo:   models.ApplicantProfile{CGPA: 3.0, DocumentScore: 0.2},
			hi:   models.ApplicantProfile{CGPA: 3.0, DocumentScore: 0.9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Greater(t, Match(tt.hi), Match(tt.lo))
			assert.Greater(t, Estimate(base, tt.hi), Estimate(base, tt.lo))
		})
	}
}

func TestEstimate_BoundaryClamp(t *testing.T) {
	strongest := models.ApplicantProfile{CGPA: 4, GRE: models.Int(340), IELTS: models.Float(9), DocumentScore: 1}
	weakest := models.ApplicantProfile{CGPA: 0, DocumentScore: 0}

	for _, base := range []*float64{models.Float(0), models.Float(1), models.Float(-3), models.Float(42)} {
		for _, p := range []models.ApplicantProfile{strongest, weakest, averageProfile()} {
			got := Estimate(base, p)
			assert.GreaterOrEqual(t, got, 0.01)
			assert.LessOrEqual(t, got, 0.99)
			assert.NotEqual(t, 0.0, got)
			assert.NotEqual(t, 1.0, got)
		}
	}
}

func TestEstimate_NonFiniteInputsStayClamped(t *testing.T) {
	nan := math.NaN()
	profiles := []models.ApplicantProfile{
		{CGPA: nan, DocumentScore: 0.5},
		{CGPA: 3, DocumentScore: nan},
		{CGPA: math.Inf(1), IELTS: models.Float(nan), DocumentScore: math.Inf(-1)},
	}
	for _, p := range profiles {
		got := Estimate(models.Float(0.3), p)
		assert.False(t, math.IsNaN(got))
		assert.GreaterOrEqual(t, got, 0.01)
		assert.LessOrEqual(t, got, 0.99)
	}

	assert.Equal(t, 0.01, EstimateFromMatch(models.Float(0.3), nan))
}

func TestEstimate_ShiftSize(t *testing.T) {
	// perfect profile at a 50% baseline: invlogit(1.6 * 0.5)
	perfect := models.ApplicantProfile{CGPA: 4, DocumentScore: 1}
	assert.InDelta(t, 1/(1+math.Exp(-0.8)), Estimate(models.Float(0.5), perfect), 1e-9)
}

// ==========================
// Cost
// ==========================

func TestCost_Example(t *testing.T) {
	r := models.InstitutionRecord{
		TuitionInState:    models.Float(20000),
		TuitionOutOfState: models.Float(35000),
		RoomBoard:         models.Float(10000),
		OtherOnCampus:     models.Float(2000),
		BooksSupply:       models.Float(1200),
	}

	c := Cost(r, 90000)

	assert.Equal(t, 35000.0, c.Tuition)
	assert.Equal(t, 12000.0, c.Living)
	assert.Equal(t, 47000.0, c.PerYear)
	assert.Equal(t, 94000.0, c.TwoYear)
	assert.Equal(t, 1200.0, c.Books)
	assert.False(t, c.WithinBudget)
}

func TestCost_Rules(t *testing.T) {
	tests := []struct {
		name        string
		record      models.InstitutionRecord
		budget      float64
		wantTuition float64
		wantTwoYear float64
		wantWithin  bool
	}{
		{
			name:        "out-of-state zero falls back to in-state",
			record:      models.InstitutionRecord{TuitionInState: models.Float(9000), TuitionOutOfState: models.Float(0)},
			budget:      18000,
			wantTuition: 9000,
			wantTwoYear: 18000,
			wantWithin:  true,
		},
		{
			name:        "out-of-state absent falls back to in-state",
			record:      models.InstitutionRecord{TuitionInState: models.Float(9000), RoomBoard: models.Float(1000)},
			budget:      10000,
			wantTuition: 9000,
			wantTwoYear: 20000,
			wantWithin:  false,
		},
		{
			name:        "everything absent",
			record:      models.InstitutionRecord{},
			budget:      0,
			wantTuition: 0,
			wantTwoYear: 0,
			wantWithin:  true,
		},
		{
			name:        "books never counted",
			record:      models.InstitutionRecord{TuitionInState: models.Float(10000), BooksSupply: models.Float(5000)},
			budget:      20000,
			wantTuition: 10000,
			wantTwoYear: 20000,
			wantWithin:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cost(tt.record, tt.budget)
			assert.Equal(t, tt.wantTuition, c.Tuition)
			assert.Equal(t, tt.wantTwoYear, c.TwoYear)
			assert.Equal(t, tt.wantWithin, c.WithinBudget)
		})
	}
}

// ==========================
// Rows and ranking
// ==========================

func TestScoreAll(t *testing.T) {
	records := []models.InstitutionRecord{
		{Name: "A", State: "TX", AdmissionRate: models.Float(0.3), TuitionInState: models.Float(10000)},
		{Name: "B", State: "TX"},
	}

	rows := ScoreAll(records, averageProfile(), 50000)

	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Name)
	assert.InDelta(t, 0.3, rows[0].Acceptance, 1e-9)
	assert.Equal(t, 30.0, rows[0].AdmitPercent)
	assert.Equal(t, 20000.0, rows[0].TwoYear)
	assert.True(t, rows[0].WithinBudget)
	assert.Nil(t, rows[1].BaselineRate)
	assert.Equal(t, 50.0, rows[1].AdmitPercent)
	assert.Equal(t, scoreWithMatch(records[0], Match(averageProfile()), 50000), rows[0])
}

func TestScoreAll_DoesNotMutateRecords(t *testing.T) {
	rate := 0.25
	records := []models.InstitutionRecord{{Name: "A", AdmissionRate: &rate}}

	_ = ScoreAll(records, models.ApplicantProfile{CGPA: 4, DocumentScore: 1}, 1)

	assert.Equal(t, 0.25, *records[0].AdmissionRate)
}

func TestRank(t *testing.T) {
	rows := []models.ScoredRow{
		{Name: "over budget cheap", WithinBudget: false, TwoYear: 10, AdmitPercent: 90},
		{Name: "in budget pricey", WithinBudget: true, TwoYear: 80, AdmitPercent: 50},
		{Name: "in budget cheap low admit", WithinBudget: true, TwoYear: 40, AdmitPercent: 20},
		{Name: "in budget cheap high admit", WithinBudget: true, TwoYear: 40, AdmitPercent: 60},
		{Name: "in budget cheap high admit twin", WithinBudget: true, TwoYear: 40, AdmitPercent: 60},
	}

	Rank(rows)

	var names []string
	for _, r := range rows {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"in budget cheap high admit",
		"in budget cheap high admit twin",
		"in budget cheap low admit",
		"in budget pricey",
		"over budget cheap",
	}, names)
}

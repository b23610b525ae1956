package resolveprogram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"admission-workers/internal/common/camunda"
	apperrors "admission-workers/internal/common/errors"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), nil, camunda.JobSupport{}, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

// ==========================================
// Resolution
// ==========================================

func TestExecute_ResolvesKnownProgram(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		ProgramName: "  DATA   science ",
		Location:    models.LocationFilter{State: "tx"},
	})
	require.NoError(t, err)

	assert.True(t, out.Resolved)
	assert.Equal(t, "3070", out.Code)
	require.NotNil(t, out.Query.ResolvedCode)
	assert.Empty(t, out.Query.TitleKeyword)
	assert.Equal(t, models.LocationState, out.Location.Mode)
	assert.Equal(t, "TX", out.Location.State)
	assert.NotContains(t, out.Related, "3070")
}

func TestExecute_UnknownProgramFallsBackToKeyword(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{ProgramName: "Underwater Basket Weaving"})
	require.NoError(t, err)

	assert.False(t, out.Resolved)
	assert.Empty(t, out.Code)
	assert.Nil(t, out.Query.ResolvedCode)
	assert.NotEmpty(t, out.Query.TitleKeyword)
	assert.Equal(t, []string{"Underwater Basket Weaving"}, out.Keywords)
	assert.Equal(t, models.LocationAnywhere, out.Location.Mode)
}

// ==========================================
// Invalid input
// ==========================================

func TestExecute_InvalidInput(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name  string
		input *Input
	}{
		{"nil input", nil},
		{"blank program", &Input{ProgramName: "   "}},
		{"zip without radius", &Input{ProgramName: "Data Science", Location: models.LocationFilter{ZipCode: "75201"}}},
		{"unknown radius", &Input{ProgramName: "Data Science", Location: models.LocationFilter{ZipCode: "75201", Radius: "30mi"}}},
		{"city without state", &Input{ProgramName: "Data Science", Location: models.LocationFilter{City: "Austin"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeInvalidSearchInput, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleActivity(id string) Activity {
	return Activity{
		ID:          id,
		DisplayName: "Search Institutions",
		Category:    "admissions",
		TaskType:    id,
		Timeout:     "2m",
	}
}

func TestRegistry_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "activity-registry.json")

	reg, err := LoadOrEmpty(path)
	require.NoError(t, err)
	require.NoError(t, reg.Add(sampleActivity("search-institutions")))
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, loaded.Activities, 1)
	assert.NotEmpty(t, loaded.LastUpdated)

	a, ok := loaded.ByTaskType("search-institutions")
	require.True(t, ok)
	assert.Equal(t, "Search Institutions", a.DisplayName)

	_, ok = loaded.ByTaskType("missing")
	assert.False(t, ok)
}

func TestRegistry_AddRejectsDuplicates(t *testing.T) {
	reg := &ActivityRegistry{}
	require.NoError(t, reg.Add(sampleActivity("a")))
	assert.ErrorIs(t, reg.Add(sampleActivity("a")), ErrDuplicateID)
}

func TestRegistry_Update(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{sampleActivity("a")}}

	require.NoError(t, reg.Update("a", "status", "verified"))
	require.NoError(t, reg.Update("a", "retries", "3"))

	assert.Equal(t, "verified", reg.Activities[0].ImplementationStatus)
	assert.Equal(t, 3, reg.Activities[0].Retries)
	assert.Error(t, reg.Update("a", "retries", "many"))
	assert.Error(t, reg.Update("a", "colour", "x"))
	assert.ErrorIs(t, reg.Update("b", "status", "x"), ErrActivityNotFound)
}

func TestRegistry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		reg     ActivityRegistry
		wantErr bool
	}{
		{"valid", ActivityRegistry{Activities: []Activity{sampleActivity("a"), sampleActivity("b")}}, false},
		{"empty", ActivityRegistry{}, true},
		{"duplicate id", ActivityRegistry{Activities: []Activity{sampleActivity("a"), sampleActivity("a")}}, true},
		{"missing task type", ActivityRegistry{Activities: []Activity{{ID: "a", DisplayName: "A", Category: "c"}}}, true},
		{"bad timeout", ActivityRegistry{Activities: []Activity{{ID: "a", DisplayName: "A", Category: "c", TaskType: "a", Timeout: "soon"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistry_ShippedFileIsValid(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	for _, taskType := range []string{
		"resolve-program",
		"search-institutions",
		"score-document",
		"score-institutions",
		"build-recommendations",
	} {
		a, ok := reg.ByTaskType(taskType)
		require.True(t, ok, taskType)
		assert.NotEmpty(t, a.InputSchema, taskType)
	}
}

func TestActivity_Helpers(t *testing.T) {
	a := Activity{Timeout: "2m"}
	assert.False(t, a.HasInputSchema())
	assert.Equal(t, 2*time.Minute, a.TimeoutOr(time.Second))

	a = Activity{Timeout: "soon", InputSchema: map[string]interface{}{"type": "object"}}
	assert.True(t, a.HasInputSchema())
	assert.Equal(t, time.Second, a.TimeoutOr(time.Second))
	assert.Equal(t, time.Second, Activity{}.TimeoutOr(time.Second))
}

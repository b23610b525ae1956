package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admission-workers/pkg/registry"
)

var shippedRegistry = filepath.Join("..", "..", "..", "configs", "activity-registry.json")

func TestNewWorkerData(t *testing.T) {
	data := NewWorkerData(registry.Activity{
		ID:       "score-institutions",
		Category: "admissions",
		Timeout:  "10s",
		InputSchema: map[string]interface{}{
			"required": []interface{}{"budget"},
			"properties": map[string]interface{}{
				"searchId": map[string]interface{}{"type": "string"},
				"budget":   map[string]interface{}{"type": "number"},
				"gre":      map[string]interface{}{"type": []interface{}{"integer", "null"}},
				"rows":     map[string]interface{}{"type": "array"},
			},
		},
	})

	assert.Equal(t, "scoreinstitutions", data.PackageName)
	assert.Equal(t, "score-institutions", data.TaskType)
	assert.Equal(t, 10*time.Second, data.Timeout)
	require.Len(t, data.InputFields, 4)
	assert.Equal(t, Field{Name: "Budget", Type: "float64", JSONName: "budget", Required: true}, data.InputFields[0])
	assert.Equal(t, "*int", data.InputFields[1].Type)
	assert.Equal(t, "[]interface{}", data.InputFields[2].Type)
	assert.Equal(t, "SearchID", data.InputFields[3].Name)
}

func TestDurationLiteral(t *testing.T) {
	assert.Equal(t, "2 * time.Minute", durationLiteral(2*time.Minute))
	assert.Equal(t, "30 * time.Second", durationLiteral(30*time.Second))
	assert.Equal(t, "1500 * time.Millisecond", durationLiteral(1500*time.Millisecond))
}

func TestRender_ShippedActivitiesProduceValidGo(t *testing.T) {
	reg, err := registry.LoadRegistry(shippedRegistry)
	require.NoError(t, err)

	for _, a := range reg.Activities {
		t.Run(a.ID, func(t *testing.T) {
			files, err := render(NewWorkerData(a))
			require.NoError(t, err)
			require.Len(t, files, len(fileOrder))

			fset := token.NewFileSet()
			for name, src := range files {
				f, err := parser.ParseFile(fset, name, src, parser.AllErrors)
				require.NoError(t, err, name)
				assert.Equal(t, packageName(a.ID), f.Name.Name)
			}
			assert.Contains(t, string(files["handler.go"]), `TaskType = "`+a.TaskType+`"`)
		})
	}
}

func TestCommand_WritesPackage(t *testing.T) {
	out := t.TempDir()
	var buf bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"score-document", "--registry", shippedRegistry, "--out", out})
	require.NoError(t, cmd.Execute())

	dir := filepath.Join(out, "admissions", "score-document")
	for _, name := range fileOrder {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	assert.Equal(t, len(fileOrder), strings.Count(buf.String(), "Generated "))

	cmd = newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"score-document", "--registry", shippedRegistry, "--out", out})
	assert.Error(t, cmd.Execute())
}

func TestCommand_UnknownActivity(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"nope", "--registry", shippedRegistry, "--out", t.TempDir()})
	assert.ErrorIs(t, cmd.Execute(), registry.ErrActivityNotFound)
}

// cmd/tools/worker-generator/templates.go
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"
	"time"

	"admission-workers/pkg/registry"
)

const modulePath = "admission-workers"

var fileOrder = []string{"config.go", "models.go", "handler.go", "handler_test.go"}

// WorkerData is what the templates see.
type WorkerData struct {
	ID           string
	PackageName  string
	TaskType     string
	Description  string
	Category     string
	Timeout      time.Duration
	InputFields  []Field
	OutputFields []Field
}

type Field struct {
	Name     string
	Type     string
	JSONName string
	Required bool
}

func NewWorkerData(a registry.Activity) WorkerData {
	taskType := a.TaskType
	if taskType == "" {
		taskType = a.ID
	}
	return WorkerData{
		ID:           a.ID,
		PackageName:  packageName(a.ID),
		TaskType:     taskType,
		Description:  a.Description,
		Category:     categoryDir(a.Category),
		Timeout:      a.TimeoutOr(30 * time.Second),
		InputFields:  schemaFields(a.InputSchema),
		OutputFields: schemaFields(a.OutputSchema),
	}
}

// packageName drops every non-alphanumeric rune: score-document -> scoredocument.
func packageName(id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// schemaFields lists the top-level properties sorted by name.
func schemaFields(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	if req, ok := schema["required"].([]interface{}); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		fields = append(fields, Field{
			Name:     exportedName(name),
			Type:     goType(details["type"]),
			JSONName: name,
			Required: required[name],
		})
	}
	return fields
}

func goType(jsonType interface{}) string {
	switch t := jsonType.(type) {
	case string:
		switch t {
		case "string":
			return "string"
		case "integer":
			return "int"
		case "number":
			return "float64"
		case "boolean":
			return "bool"
		case "object":
			return "map[string]interface{}"
		case "array":
			return "[]interface{}"
		}
	case []interface{}:
		// ["integer", "null"] and friends become pointers.
		for _, v := range t {
			if s, ok := v.(string); ok && s != "null" {
				base := goType(s)
				if strings.HasPrefix(base, "map") || strings.HasPrefix(base, "[]") || base == "interface{}" {
					return base
				}
				return "*" + base
			}
		}
	}
	return "interface{}"
}

func exportedName(jsonName string) string {
	if jsonName == "" {
		return jsonName
	}
	name := strings.ToUpper(jsonName[:1]) + jsonName[1:]
	for _, initialism := range []string{"Id", "Url", "Csv", "Gpa"} {
		if strings.HasSuffix(name, initialism) {
			name = strings.TrimSuffix(name, initialism) + strings.ToUpper(initialism)
		}
	}
	return name
}

func durationLiteral(d time.Duration) string {
	switch {
	case d%time.Minute == 0:
		return fmt.Sprintf("%d * time.Minute", d/time.Minute)
	case d%time.Second == 0:
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	default:
		return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
	}
}

var funcs = template.FuncMap{
	"duration": durationLiteral,
	"module":   func() string { return modulePath },
}

// render executes every template and gofmts the result.
func render(data WorkerData) (map[string][]byte, error) {
	if data.PackageName == "" {
		return nil, fmt.Errorf("activity %q yields an empty package name", data.ID)
	}
	out := make(map[string][]byte, len(templates))
	for name, src := range templates {
		tmpl, err := template.New(name).Funcs(funcs).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("execute template %s: %w", name, err)
		}
		formatted, err := format.Source(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", name, err)
		}
		out[name] = formatted
	}
	return out, nil
}

var templates = map[string]string{
	"config.go": `// internal/workers/{{ .Category }}/{{ .ID }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ duration .Timeout }},
	}
}
`,

	"models.go": `// internal/workers/{{ .Category }}/{{ .ID }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .Type }} ` + "`" + `json:"{{ .JSONName }}{{ if not .Required }},omitempty{{ end }}"` + "`" + `
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .Name }} {{ .Type }} ` + "`" + `json:"{{ .JSONName }}"` + "`" + `
{{- end }}
}
`,

	"handler.go": `// internal/workers/{{ .Category }}/{{ .ID }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"{{ module }}/internal/common/camunda"
	apperrors "{{ module }}/internal/common/errors"
	"{{ module }}/internal/common/logger"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Handler runs {{ .TaskType }} jobs.
type Handler struct {
	config *Config
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, support camunda.JobSupport, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, support, log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, variables string) (interface{}, error) {
		var input Input
		if err := json.Unmarshal([]byte(variables), &input); err != nil {
			return nil, apperrors.NewParseError(err)
		}
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Output{}, nil
}
`,

	"handler_test.go": `package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"{{ module }}/internal/common/camunda"
	"{{ module }}/internal/common/logger"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), camunda.JobSupport{}, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

// ==========================================
// Execute
// ==========================================

func TestExecute(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestExecute_CancelledContext(t *testing.T) {
	h := createTestHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Execute(ctx, &Input{})
	assert.ErrorIs(t, err, context.Canceled)
}
`,
}

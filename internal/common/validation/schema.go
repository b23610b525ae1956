package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"admission-workers/pkg/registry"
)

const rootContext = "(root)"

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator checks job variables against the input schemas of an activity
// registry. Schemas are compiled once per task type.
type Validator struct {
	registry *registry.ActivityRegistry

	mu       sync.Mutex
	compiled map[string]*gojsonschema.Schema
}

func NewValidator(reg *registry.ActivityRegistry) *Validator {
	return &Validator{
		registry: reg,
		compiled: make(map[string]*gojsonschema.Schema),
	}
}

// CompileAll compiles every input schema up front so a broken registry
// fails at startup rather than on the first job.
func (v *Validator) CompileAll() error {
	for _, a := range v.registry.Activities {
		if _, err := v.schemaFor(a.TaskType); err != nil {
			return err
		}
	}
	return nil
}

// ValidateJSON validates raw job variables for taskType. Task types without a
// registry entry or without an input schema always pass.
func (v *Validator) ValidateJSON(taskType, variables string) (*ValidationResult, error) {
	schema, err := v.schemaFor(taskType)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return &ValidationResult{Valid: true}, nil
	}
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(variables))
	if err != nil {
		return nil, fmt.Errorf("validate %s input: %w", taskType, err)
	}
	return fromResult(result), nil
}

// ValidateInput validates an already decoded document against a schema map.
func ValidateInput(input map[string]interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	if len(schema) == 0 {
		return &ValidationResult{Valid: true}, nil
	}
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(input))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return fromResult(result), nil
}

func (v *Validator) schemaFor(taskType string) (*gojsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.compiled[taskType]; ok {
		return s, nil
	}

	var schema *gojsonschema.Schema
	if a, ok := v.registry.ByTaskType(taskType); ok && a.HasInputSchema() {
		s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", taskType, err)
		}
		schema = s
	}
	v.compiled[taskType] = schema
	return schema, nil
}

func fromResult(result *gojsonschema.Result) *ValidationResult {
	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if prop, ok := desc.Details()["property"].(string); ok && desc.Type() == "required" {
			switch {
			case field == rootContext:
				field = prop
			case field != prop && !strings.HasSuffix(field, "."+prop):
				field = field + "." + prop
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out
}

// Err summarizes a failed result as one error, or nil when valid.
func (vr *ValidationResult) Err() error {
	if vr == nil || vr.Valid {
		return nil
	}
	return fmt.Errorf("input validation failed: %s", strings.Join(vr.GetErrorMessages(), "; "))
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

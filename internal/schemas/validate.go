// Package schemas validates resume documents against the embedded JSON Schema.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema string

const resumeSchemaName = "resume.schema.json"

var (
	compileOnce    sync.Once
	compiledResume *gojsonschema.Schema
	compileErr     error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Fields lists the failing field paths in order.
func (ve *ValidationError) Fields() []string {
	out := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		out = append(out, e.Field)
	}
	return out
}

// SchemaLoadError represents errors loading or parsing the schema or document
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ResumeSchema returns the embedded resume schema document.
func ResumeSchema() string {
	return resumeSchema
}

func resumeValidator() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledResume, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(resumeSchema))
		if compileErr != nil {
			compileErr = &SchemaLoadError{Path: resumeSchemaName, Message: "invalid embedded schema", Cause: compileErr}
		}
	})
	return compiledResume, compileErr
}

// ValidateResumeJSON validates a resume document. It returns *ValidationError
// when the document does not match and *SchemaLoadError when it is not JSON.
func ValidateResumeJSON(doc []byte) error {
	schema, err := resumeValidator()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &SchemaLoadError{Path: resumeSchemaName, Message: "document could not be read", Cause: err}
	}
	return toValidationError(result)
}

// ValidateResumeFile reads path and validates it as a resume document.
func ValidateResumeFile(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	doc, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}
	if err := ValidateResumeJSON(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Request schemas for the conversational API. Enum lists here mirror the
// taxonomy constants; keep them in sync when a visualization or entity is
// added.
const messageRequestSchema = `{
	"type": "object",
	"properties": {
		"content": {
			"type": "string",
			"minLength": 1,
			"maxLength": 2000
		}
	},
	"required": ["content"],
	"additionalProperties": false
}`

const widgetResolveSchema = `{
	"type": "object",
	"properties": {
		"entity": {"type": "string", "minLength": 1},
		"metric": {"type": "string", "minLength": 1},
		"visualization": {
			"type": "string",
			"enum": ["bar", "line", "insight"]
		},
		"timeframe": {
			"type": "string",
			"enum": ["last_30_days", "last_3_months", "last_6_months", "last_12_months", "this_year"]
		}
	},
	"required": ["entity", "metric"],
	"additionalProperties": false
}`

const feedbackRequestSchema = `{
	"type": "object",
	"properties": {
		"messageId": {"type": "string", "minLength": 1},
		"helpful": {"type": "boolean"},
		"comment": {"type": "string", "maxLength": 2000}
	},
	"required": ["messageId", "helpful"],
	"additionalProperties": false
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator holds the compiled request schemas.
type Validator struct {
	message       *gojsonschema.Schema
	widgetResolve *gojsonschema.Schema
	feedback      *gojsonschema.Schema
}

func NewValidator() (*Validator, error) {
	message, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(messageRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("compile message schema: %w", err)
	}
	widgetResolve, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(widgetResolveSchema))
	if err != nil {
		return nil, fmt.Errorf("compile widget resolve schema: %w", err)
	}
	feedback, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(feedbackRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("compile feedback schema: %w", err)
	}
	return &Validator{
		message:       message,
		widgetResolve: widgetResolve,
		feedback:      feedback,
	}, nil
}

// ValidateMessage checks a raw message request body.
func (v *Validator) ValidateMessage(body []byte) *ValidationResult {
	return validate(v.message, body)
}

// ValidateWidgetResolve checks a raw widget resolve request body.
func (v *Validator) ValidateWidgetResolve(body []byte) *ValidationResult {
	return validate(v.widgetResolve, body)
}

// ValidateFeedback checks a raw feedback request body.
func (v *Validator) ValidateFeedback(body []byte) *ValidationResult {
	return validate(v.feedback, body)
}

func validate(schema *gojsonschema.Schema, body []byte) *ValidationResult {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{Field: "(body)", Message: "invalid JSON: " + err.Error()},
			},
		}
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	out := &ValidationResult{Valid: false}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return out
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

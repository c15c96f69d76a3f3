// Package validation checks a filled-in form against the rules implied by
// its field list. Each input field compiles to an OpenAPI schema and the
// submitted value is validated against it.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Patterns applied to typed inputs.
const (
	EmailPattern = `^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`
	PhonePattern = `^\d{10}$`
	NamePattern  = `^[a-zA-Z\s]+$`
)

// Issue codes.
const (
	CodeRequired = "required"
	CodeEmail    = "email"
	CodePhone    = "phone"
	CodeName     = "name"
	CodeChoice   = "choice"
)

var defaultMessages = map[string]string{
	CodeRequired: "This field is required",
	CodeEmail:    "Please enter a valid email address (e.g. name123@gmail.com)",
	CodePhone:    "Please enter a valid 10-digit phone number (e.g. 9876543210)",
	CodeName:     "Only letters and spaces are allowed in name",
	CodeChoice:   "Invalid selection",
}

// Submission maps field ids to the values entered for them.
type Submission map[string]model.Value

// SubmissionFromList collects the live values held by the list itself.
func SubmissionFromList(list *model.List) Submission {
	out := make(Submission, list.Len())
	for _, field := range list.Fields() {
		if field.Type.AcceptsInput() {
			out[field.ID] = field.Value
		}
	}
	return out
}

// Issue is a single rejected field.
type Issue struct {
	Field   string `json:"field"`
	Label   string `json:"label,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result captures the outcome of validating one submission.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// ByField indexes issue messages by field id.
func (r Result) ByField() map[string]string {
	out := make(map[string]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = issue.Message
	}
	return out
}

// Err returns nil for a valid result and an error listing the issues
// otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	parts := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		name := issue.Label
		if name == "" {
			name = issue.Field
		}
		parts[i] = fmt.Sprintf("%s: %s", name, issue.Message)
	}
	return fmt.Errorf("validation: %s", strings.Join(parts, "; "))
}

// Option configures a Validator.
type Option func(*Validator)

// WithMessage overrides the message reported for code.
func WithMessage(code, message string) Option {
	return func(v *Validator) {
		if code != "" && message != "" {
			v.messages[code] = message
		}
	}
}

// Validator validates submissions.
type Validator struct {
	messages map[string]string
}

// New returns a validator with the default messages.
func New(options ...Option) *Validator {
	v := &Validator{messages: make(map[string]string, len(defaultMessages))}
	for code, message := range defaultMessages {
		v.messages[code] = message
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate checks every input field of list in order. A required field with
// no answer fails with CodeRequired; empty optional fields are skipped; any
// other answer is matched against the field's schema.
func (v *Validator) Validate(ctx context.Context, list *model.List, submission Submission) (Result, error) {
	result := Result{Valid: true}
	for _, field := range list.Fields() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if issue, ok := v.Check(field, submission[field.ID]); !ok {
			result.Valid = false
			result.Issues = append(result.Issues, issue)
		}
	}
	return result, nil
}

// Check validates a single answer. ok is false when the answer is rejected,
// in which case issue describes why. Non-input fields always pass.
func (v *Validator) Check(field model.Field, value model.Value) (issue Issue, ok bool) {
	if !field.Type.AcceptsInput() {
		return Issue{}, true
	}
	if value.IsZero() {
		if field.Required() {
			return v.issue(field, CodeRequired), false
		}
		return Issue{}, true
	}
	schema, code := FieldSchema(field)
	if schema == nil {
		return Issue{}, true
	}
	if err := schema.VisitJSON(value.Any()); err != nil {
		return v.issue(field, code), false
	}
	return Issue{}, true
}

func (v *Validator) issue(field model.Field, code string) Issue {
	return Issue{
		Field:   field.ID,
		Label:   field.Label(),
		Code:    code,
		Message: v.messages[code],
	}
}

// FieldSchema returns the schema a non-empty answer to field must satisfy
// and the issue code reported when it does not. Fields without format rules
// return a nil schema. Choice membership is only enforced on required
// fields.
func FieldSchema(field model.Field) (*openapi3.Schema, string) {
	switch field.Type {
	case model.FieldTypeEmail:
		return openapi3.NewStringSchema().WithPattern(EmailPattern), CodeEmail
	case model.FieldTypePhone:
		return openapi3.NewStringSchema().WithPattern(PhonePattern), CodePhone
	case model.FieldTypeName:
		return openapi3.NewStringSchema().WithPattern(NamePattern), CodeName
	case model.FieldTypeDropdown, model.FieldTypeRadio:
		if !field.Required() {
			return nil, ""
		}
		return choiceSchema(field), CodeChoice
	default:
		return nil, ""
	}
}

func choiceSchema(field model.Field) *openapi3.Schema {
	options := field.Options()
	enum := make([]any, len(options))
	for i, option := range options {
		enum[i] = option
	}
	item := openapi3.NewStringSchema().WithEnum(enum...)
	if field.Multi() {
		return openapi3.NewArraySchema().WithItems(item)
	}
	return item
}

// FormSchema describes the whole form as an object schema keyed by field
// id, listing required inputs. It is suitable for publishing alongside a
// shared form.
func FormSchema(list *model.List) *openapi3.Schema {
	form := openapi3.NewObjectSchema()
	for _, field := range list.Fields() {
		if !field.Type.AcceptsInput() {
			continue
		}
		property, _ := FieldSchema(field)
		if property == nil {
			property = propertyFallback(field)
		}
		if label := field.Label(); label != "" {
			property.Title = label
		}
		form.WithProperty(field.ID, property)
		if field.Required() {
			form.Required = append(form.Required, field.ID)
		}
	}
	return form
}

func propertyFallback(field model.Field) *openapi3.Schema {
	switch {
	case field.Type == model.FieldTypeFile:
		return openapi3.NewObjectSchema().
			WithProperty("name", openapi3.NewStringSchema()).
			WithProperty("size", openapi3.NewIntegerSchema()).
			WithProperty("type", openapi3.NewStringSchema())
	case field.Type == model.FieldTypeDate:
		return openapi3.NewStringSchema().WithFormat("date")
	case field.Multi():
		return openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	default:
		return openapi3.NewStringSchema()
	}
}

var defaultValidator = New()

// Validate runs the default validator.
func Validate(ctx context.Context, list *model.List, submission Submission) (Result, error) {
	return defaultValidator.Validate(ctx, list, submission)
}

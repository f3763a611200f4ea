package schema

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/aretw0/logicx/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("endpoint", validEndpoint); err != nil {
		panic(err)
	}
	return v
}

// validEndpoint checks a connection token, optionally restricted to
// "input" or "output" terminals by the tag parameter.
func validEndpoint(fl validator.FieldLevel) bool {
	c, err := domain.ParseConnection(fl.Field().String())
	if err != nil {
		return false
	}
	switch fl.Param() {
	case "input":
		return c.Terminal.IsInput()
	case "output":
		return c.Terminal.IsOutput()
	}
	return true
}

// Validate checks the structure of doc and that every reference in it
// resolves: placements name known templates, and connection and wire
// tokens address existing instances and terminals.
// Returns an *AggregateError with all failures found.
func Validate(doc *Document) error {
	if doc == nil {
		return &AggregateError{Errors: []error{&ValidationError{Key: "document", Reason: "required"}}}
	}

	if err := validate.Struct(doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		errs := make([]error, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			errs = append(errs, fieldError(fe))
		}
		return &AggregateError{Errors: errs}
	}

	// References are only meaningful once every token parses.
	if errs := checkReferences(doc); len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// fieldError converts validator errors to a more user-friendly format
func fieldError(fe validator.FieldError) *ValidationError {
	key := strings.TrimPrefix(fe.Namespace(), "Document.")

	switch fe.Tag() {
	case "required":
		return &ValidationError{Key: key, Reason: "required"}
	case "required_if":
		return &ValidationError{Key: key, Reason: "required when " + strings.Replace(fe.Param(), " ", " is ", 1)}
	case "oneof":
		return &ValidationError{Key: key, Reason: "must be one of: " + fe.Param(), Value: fe.Value()}
	case "unique":
		return &ValidationError{Key: key, Reason: "duplicate " + strings.ToLower(fe.Param())}
	case "endpoint":
		return &ValidationError{Key: key, Reason: "not a valid " + fe.Param() + " token", Value: fe.Value()}
	}
	return &ValidationError{Key: key, Reason: "failed " + fe.Tag(), Value: fe.Value()}
}

func checkReferences(doc *Document) []error {
	var errs []error

	templates := make(map[uint64]TemplateDoc, len(doc.Templates))
	for _, t := range doc.Templates {
		templates[t.ID] = t
	}

	instances := make(map[uint64]TemplateDoc, len(doc.Placements))
	for i, pl := range doc.Placements {
		t, ok := templates[pl.Template]
		if !ok {
			errs = append(errs, &ValidationError{
				Key:    fmt.Sprintf("placements[%d].template", i),
				Reason: "unknown template",
				Value:  pl.Template,
			})
			continue
		}
		instances[pl.Instance] = t
	}

	check := func(key, token string) {
		c, err := domain.ParseConnection(token)
		if err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: token})
			return
		}
		t, ok := instances[uint64(c.Instance)]
		if !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: "unknown instance", Value: token})
			return
		}
		n := len(t.Inputs)
		if c.Terminal.IsOutput() {
			n = len(t.Outputs)
		}
		if c.Terminal.Index >= uint64(n) {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: fmt.Sprintf("terminal out of range for template %q", t.Name),
				Value:  token,
			})
		}
	}

	for _, out := range slices.Sorted(maps.Keys(doc.Connections)) {
		check(fmt.Sprintf("connections[%s]", out), out)
		for i, in := range doc.Connections[out] {
			check(fmt.Sprintf("connections[%s][%d]", out, i), in)
		}
	}
	for i, w := range doc.Wires {
		check(fmt.Sprintf("wires[%d].from", i), w.From)
		check(fmt.Sprintf("wires[%d].to", i), w.To)
	}

	return errs
}

package models

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError is a local, pre-request failure. It is never sent to the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
			return Status(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("action", func(fl validator.FieldLevel) bool {
			return Action(fl.Field().String()).Valid()
		})
		// Вес вводится с шагом 0.1 т.
		_ = v.RegisterValidation("tenths", func(fl validator.FieldLevel) bool {
			x := fl.Field().Float() * 10
			return math.Abs(x-math.Round(x)) < 1e-9
		})
		validate = v
	})
	return validate
}

func structError(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return out
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 0 and 50", field)
	case "tenths":
		return fmt.Sprintf("%s must have at most one decimal place", field)
	case "status":
		return fmt.Sprintf("%s must be one of Available, In Use, Needs Picked Up, Dumped", field)
	case "action":
		return fmt.Sprintf("%s must be one of dropoff, pickup, maintenance", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

// Validate checks required fields and, for Dumped, the disposal sub-record.
func (d ContainerDraft) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return newValidationError("id", "Please enter a container number.")
	}
	if !d.Status.Terminal() {
		d.Disposal = nil
	}
	if err := structError(validatorInstance().Struct(d)); err != nil {
		return err
	}
	if d.Status.Terminal() {
		if d.Disposal == nil {
			return newValidationError("disposal", "weight and date_dumped are required for Dumped containers")
		}
		if d.Disposal.DateDumped.IsZero() || !d.Disposal.DateDumped.IsValid() {
			return newValidationError("disposal.date_dumped", "date_dumped is required for Dumped containers")
		}
	}
	return nil
}

func (d CustomerDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return newValidationError("name", "name is required")
	}
	return structError(validatorInstance().Struct(d.Trimmed()))
}

func (d LogEntryDraft) Validate() error {
	return structError(validatorInstance().Struct(d.Trimmed()))
}

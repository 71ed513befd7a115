package binder

import (
	"context"
	"html"
	"reflect"
	"time"

	"github.com/go-playground/mold/v4"
	"github.com/go-playground/validator/v10"
)

// dateValidator ensures the value is a real calendar date in YYYY-MM-DD form
// or the empty string. Parsing rather than pattern-matching rejects values
// like 2020-02-31 that look shaped right but name no actual day. Allowing the
// empty string is what makes optional date fields work: absent input passes
// here and is later normalized to NULL. Fields that need a date to be present
// should pair this with `required`.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// escapeModifier is a mold modifier that HTML-escapes markup-significant
// characters. It handles plain strings and string slices, so multi-value
// form fields (e.g. genre checkboxes) are escaped element by element.
func escapeModifier(_ context.Context, fl mold.FieldLevel) error {
	field := fl.Field()
	switch field.Kind() { //nolint:exhaustive
	case reflect.String:
		field.SetString(html.EscapeString(field.String()))
	case reflect.Slice:
		for i := 0; i < field.Len(); i++ {
			el := field.Index(i)
			if el.Kind() == reflect.String {
				el.SetString(html.EscapeString(el.String()))
			}
		}
	}
	return nil
}

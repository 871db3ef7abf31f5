package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	templates = map[string]string{
		"required":    "{field} is required",
		"gt":          "{field} must be greater than {param}",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must not exceed {param} characters",
		"min":         "{field} must be greater than or equal to {param}",
		"email":       "{field} must be a valid email address",
		"nefield":     "{field} must differ from {param}",
		"url":         "{field} must be a valid URL",
		"datetime":    "{field} must be a date in {param} format",
		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must not exceed {param} MB",
	}
)

func format(valErr val.FieldError) string {
	tmpl := templates[valErr.Tag()]
	if tmpl == "" {
		return valErr.Error()
	}

	tmpl = strings.ReplaceAll(tmpl, "{field}", valErr.Field())

	return strings.ReplaceAll(tmpl, "{param}", valErr.Param())
}

// messages renders every validation error, in struct field order.
func messages(err error) []string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return []string{err.Error()}
	}

	res := make([]string, 0, len(valErrors))
	for _, valErr := range valErrors {
		res = append(res, format(valErr))
	}

	return res
}

// message renders the first validation error only.
func message(err error) string {
	msgs := messages(err)
	if len(msgs) == 0 {
		return err.Error()
	}

	return msgs[0]
}

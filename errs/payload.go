package errs

import "github.com/go-playground/validator/v10"

// InternalErrorPayload serializes a simple error with a static message.
type InternalErrorPayload struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// FieldError describes a single violated rule on one field, e.g.
// the "min" tag of a length validation along its parameter.
type FieldError struct {
	Code  string `json:"code"`
	Param string `json:"param,omitempty"`
	Value any    `json:"value,omitempty"`
}

// ValidationErrorPayload serializes a validation error with a string
// error and/or field-level validation errors.
//
// Serialized as JSON it looks like:
//
//	{
//	  "code": "validation_error",
//	  "error": "Validation error",
//	  "field_errors": {
//	    "name": [
//	      { "code": "min", "param": "3", "value": "Sr" }
//	    ]
//	  }
//	}
type ValidationErrorPayload struct {
	Code        string                  `json:"code,omitempty"`
	Error       string                  `json:"error"`
	FieldErrors map[string][]FieldError `json:"field_errors,omitempty"`
}

// FromValidationErrors converts the field errors reported by the
// go-playground validator into a payload with per-field detail.
func FromValidationErrors(verrs validator.ValidationErrors) *ValidationErrorPayload {
	fieldErrors := make(map[string][]FieldError, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		fieldErrors[field] = append(fieldErrors[field], FieldError{
			Code:  fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	msg := "Validation error"
	if len(fieldErrors) > 1 {
		msg = "Validations error"
	}
	return &ValidationErrorPayload{
		Code:        "validation_error",
		Error:       msg,
		FieldErrors: fieldErrors,
	}
}

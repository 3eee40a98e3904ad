package query

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// BindQuerySearch binds the query string of the request into a
// QuerySearch, applying DefaultPageSize when page_size is not set, and
// validates the range rules (offset >= 0, page_size >= 1).
//
// Validation failures are returned as validator.ValidationErrors so the
// error handler registered with errs.HTTPErrorHandler renders them as an
// HTTP 400 response with field-level detail.
func BindQuerySearch(c echo.Context) (*QuerySearch, error) {
	q := &QuerySearch{PageSize: DefaultPageSize}
	if err := BindAndValidate(c, q); err != nil {
		return nil, err
	}
	return q, nil
}

// BindAndValidate binds request data into payload and validates it with
// the rules declared in its `validate` struct tags. Errors from both
// steps are meant to be returned as-is from the handler: echo bind
// errors and validator.ValidationErrors are rendered by
// errs.HTTPErrorHandler as HTTP 400 responses.
func BindAndValidate(c echo.Context, payload any) error {
	if err := c.Bind(payload); err != nil {
		return err
	}
	return validate.Struct(payload)
}

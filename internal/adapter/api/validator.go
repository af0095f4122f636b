package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"gmrportal/pkg/response"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ErrorHandler renders anything a handler or middleware returns in the
// standard envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	_ = response.Error(c, err)
}

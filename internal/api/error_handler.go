package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/logger"
)

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	msg := err.Error()
	code := http.StatusInternalServerError

	var (
		codedErr      *constants.CodedError
		validationErr validator.ValidationErrors
		httpErr       *echo.HTTPError
	)
	switch {
	case errors.As(err, &codedErr):
		code = codedErr.Code()
	case errors.As(err, &validationErr):
		code = http.StatusBadRequest
	case errors.As(err, &httpErr):
		code = httpErr.Code
		msg = fmt.Sprint(httpErr.Message)
	}

	if code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Request().URL.Path, err.Error())
	}

	_ = c.JSON(code, domain.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}

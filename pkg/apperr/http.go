package apperr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// JSON writes err as {"error": ..., "details": [...]} with the status of its kind.
func JSON(c echo.Context, err error) error {
	body := echo.Map{"error": err.Error()}
	var ve *ValidationError
	if errors.As(err, &ve) {
		body["details"] = ve.Details
	}
	return c.JSON(Status(err), body)
}

func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// ParamID reads a positive numeric path parameter.
func ParamID(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, Invalid(name, "must be a positive integer")
	}
	return uint(n), nil
}

// QueryID reads an optional numeric query parameter; zero means absent.
func QueryID(c echo.Context, name string) (uint, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, Invalid(name, "must be a positive integer")
	}
	return uint(n), nil
}

// ErrorHandler renders errors that escape handlers (unknown routes, wrong
// methods, panics recovered upstream) in the same {"error": ...} shape.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(he.Code)
			return
		}
		_ = c.JSON(he.Code, echo.Map{"error": msg})
		return
	}
	_ = JSON(c, err)
}

package apperr

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCheckerCollectsEveryDetail(t *testing.T) {
	var chk Checker
	chk.Require("code", "  ")
	chk.Require("name", "ok")
	chk.NonNegative("unit_cost", -1)
	chk.Check(false, "status", "unknown value X")

	err := chk.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []Detail{
		{Field: "code", Message: "is required"},
		{Field: "unit_cost", Message: "must be >= 0"},
		{Field: "status", Message: "unknown value X"},
	}, ve.Details)
}

func TestCheckerNonNegativeRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		var chk Checker
		chk.NonNegative("unit_cost", v)
		var ve *ValidationError
		require.ErrorAs(t, chk.Err(), &ve)
		assert.Equal(t, []Detail{{Field: "unit_cost", Message: "must be a finite number"}}, ve.Details)
	}
}

func TestCheckerEmptyIsNil(t *testing.T) {
	var chk Checker
	chk.Require("name", "x")
	assert.NoError(t, chk.Err())
}

func TestFromDB(t *testing.T) {
	assert.NoError(t, FromDB(nil, "site", false))
	assert.ErrorIs(t, FromDB(gorm.ErrRecordNotFound, "site", false), ErrNotFound)
	assert.ErrorIs(t, FromDB(gorm.ErrDuplicatedKey, "technique", false), ErrConflict)
	assert.ErrorIs(t, FromDB(errors.New("UNIQUE constraint failed: techniques.code"), "technique", false), ErrConflict)

	fk := errors.New("FOREIGN KEY constraint failed")
	assert.ErrorIs(t, FromDB(fk, "design", false), ErrInvalidReference)
	assert.ErrorIs(t, FromDB(fk, "site", true), ErrConflict)
	assert.ErrorIs(t, FromDB(gorm.ErrForeignKeyViolated, "site", true), ErrConflict)

	other := errors.New("disk I/O error")
	assert.Equal(t, other, FromDB(other, "site", false))
}

func TestMustExist(t *testing.T) {
	assert.NoError(t, MustExist(true, nil, "site_id", 1))
	assert.ErrorIs(t, MustExist(false, nil, "site_id", 7), ErrInvalidReference)
	boom := errors.New("boom")
	assert.Equal(t, boom, MustExist(false, boom, "site_id", 7))
}

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("site", 1), http.StatusNotFound},
		{Invalid("name", "is required"), http.StatusBadRequest},
		{fmt.Errorf("x: %w", ErrInvalidReference), http.StatusUnprocessableEntity},
		{fmt.Errorf("x: %w", ErrConflict), http.StatusConflict},
		{fmt.Errorf("x: %w", ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("x: %w", ErrUpstream), http.StatusBadGateway},
		{errors.New("something else went wrong"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestJSONIncludesDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, JSON(c, Invalid("name", "is required")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"validation failed: name: is required","details":[{"field":"name","message":"is required"}]}`, rec.Body.String())
}

func TestParamID(t *testing.T) {
	e := echo.New()
	for _, tc := range []struct {
		raw string
		id  uint
		ok  bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(tc.raw)
		id, err := ParamID(c, "id")
		if tc.ok {
			require.NoError(t, err, tc.raw)
			assert.Equal(t, tc.id, id)
		} else {
			assert.ErrorIs(t, err, ErrValidation, tc.raw)
		}
	}
}

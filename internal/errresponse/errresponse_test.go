package errresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/newsboard/internal/errs"
)

func TestFromError(t *testing.T) {
	_, numErr := strconv.ParseInt("hello", 10, 64)

	var decodeErr error = json.NewDecoder(strings.NewReader(`{"inc_votes": "lots"}`)).Decode(&struct {
		IncVotes int `json:"inc_votes"`
	}{})

	validateErr := validator.New().Struct(struct {
		Body string `validate:"required"`
	}{})

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", errs.NotFound(), http.StatusNotFound, "Not found"},
		{"wrapped bad request", fmt.Errorf("list: %w", errs.BadRequest()), http.StatusBadRequest, "Bad request"},
		{"custom status", errs.New(http.StatusConflict, "already there"), http.StatusConflict, "already there"},
		{"parse failure", numErr, http.StatusBadRequest, "Bad request"},
		{"decode failure", decodeErr, http.StatusBadRequest, "Bad request"},
		{"validation failure", validateErr, http.StatusBadRequest, "Bad request"},
		{"marked invalid", ErrInvalidRequest(errors.New("missing field")), http.StatusBadRequest, "Bad request"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := FromError(tt.err)
			assert.Equal(t, tt.status, resp.HTTPStatusCode)
			assert.Equal(t, tt.msg, resp.Msg)
		})
	}
}

func TestHandleRendersJSON(t *testing.T) {
	h := Handle(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("secret internals")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"msg":"Internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestHandleSuccessWritesNothingExtra(t *testing.T) {
	h := Handle(func(w http.ResponseWriter, r *http.Request) error {
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, render.M{"ok": true})

		return nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/api/toothpicks", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"msg":"Not found"}`, rec.Body.String())
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"msg":"Internal server error"}`, rec.Body.String())
}

package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name string `json:"name" validate:"required,max=5"`
}

func Test_ParsePathID(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	validID := uuid.New()
	testCases := []struct {
		name         string
		value        string
		expectedOK   bool
		expectedCode int
	}{
		{name: "valid", value: validID.String(), expectedOK: true, expectedCode: http.StatusOK},
		{name: "invalid", value: "nope", expectedOK: false, expectedCode: http.StatusBadRequest},
		{name: "empty", value: "", expectedOK: false, expectedCode: http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("storeId", tc.value)
			rr := httptest.NewRecorder()
			// when
			id, ok := ParsePathID(rr, req, logger, "storeId")
			// then
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedCode, rr.Code)
			if ok {
				assert.Equal(t, validID, id)
			} else {
				assert.JSONEq(t, `{"error":"Invalid ID: `+tc.value+`"}`, rr.Body.String())
			}
		})
	}
}

func Test_DecodeAndValidate(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	testCases := []struct {
		name         string
		body         string
		expectedOK   bool
		expectedBody string
	}{
		{name: "valid", body: `{"name":"abc"}`, expectedOK: true},
		{name: "malformed", body: `{"name":`, expectedBody: `{"error":"Invalid request body"}`},
		{name: "missing field", body: `{}`, expectedBody: `{"validation_errors":{"Name":"failed on rule: required"}}`},
		{name: "too long", body: `{"name":"abcdef"}`, expectedBody: `{"validation_errors":{"Name":"failed on rule: max"}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			var dst payload
			// when
			ok := DecodeAndValidate(rr, req, logger, validator.New(), &dst)
			// then
			assert.Equal(t, tc.expectedOK, ok)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func Test_DecodeAndValidateList(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	testCases := []struct {
		name          string
		body          string
		expectedOK    bool
		expectedCount int
		expectedBody  string
	}{
		{name: "valid", body: `[{"name":"a"},{"name":"b"}]`, expectedOK: true, expectedCount: 2},
		{name: "empty array", body: `[]`, expectedOK: true, expectedCount: 0},
		{name: "object instead of array", body: `{"name":"a"}`, expectedBody: `{"error":"Invalid request body"}`},
		{name: "null", body: `null`, expectedBody: `{"error":"Invalid request body"}`},
		{name: "second element invalid", body: `[{"name":"a"},{}]`, expectedBody: `{"validation_errors":{"[1].Name":"failed on rule: required"}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			var dst []payload
			// when
			ok := DecodeAndValidateList(rr, req, logger, validator.New(), &dst)
			// then
			assert.Equal(t, tc.expectedOK, ok)
			if ok {
				assert.Len(t, dst, tc.expectedCount)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

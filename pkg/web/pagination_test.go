package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParsePage(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	testCases := []struct {
		name           string
		query          string
		expectedOK     bool
		expectedOffset int32
		expectedLimit  int32
		expectedBody   string
	}{
		{name: "defaults", query: "", expectedOK: true, expectedOffset: 0, expectedLimit: DefaultPageLimit},
		{name: "explicit", query: "?offset=20&limit=10", expectedOK: true, expectedOffset: 20, expectedLimit: 10},
		{name: "negative offset", query: "?offset=-1", expectedBody: `{"error":"Invalid offset number: -1"}`},
		{name: "zero limit", query: "?limit=0", expectedBody: `{"error":"Invalid limit number: 0"}`},
		{name: "limit above max", query: "?limit=501", expectedBody: `{"error":"Invalid limit number: 501"}`},
		{name: "not a number", query: "?limit=ten", expectedBody: `{"error":"Invalid limit number: ten"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/products"+tc.query, nil)
			rr := httptest.NewRecorder()
			// when
			offset, limit, ok := ParsePage(rr, req, logger)
			// then
			assert.Equal(t, tc.expectedOK, ok)
			if ok {
				assert.Equal(t, tc.expectedOffset, offset)
				assert.Equal(t, tc.expectedLimit, limit)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

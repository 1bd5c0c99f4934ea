// Package api provides HTTP assertions shared by handler and router tests.
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/learncards/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorResponse checks that a recorded response carries the standard
// JSON error body with the expected status code and message fragment.
func AssertErrorResponse(
	t *testing.T,
	rr *httptest.ResponseRecorder,
	expectedStatus int,
	expectedErrorMsgPart string,
) shared.ErrorResponse {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code,
		"Expected status code %d but got %d", expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var errResp shared.ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &errResp)
	require.NoError(t, err, "Failed to unmarshal error response: %s", rr.Body.String())

	assert.Contains(t, errResp.Error, expectedErrorMsgPart,
		"Error message should contain '%s' but got '%s'", expectedErrorMsgPart, errResp.Error)
	return errResp
}

// AssertNoContent checks for a 204 response with an empty body.
func AssertNoContent(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.Bytes(), "Expected empty body for 204 No Content")
}

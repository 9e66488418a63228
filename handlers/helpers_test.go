package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	jobSvc "fixkaro/services/job"
	"fixkaro/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestRespondErrorMapsDomainCode(t *testing.T) {
	c, w := testContext(t)

	respondError(c, jobSvc.ErrJobNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "jobNotFound", body["code"])
	assert.Equal(t, "job not found", body["error"])
}

func TestRespondErrorWithholdsInternalDetail(t *testing.T) {
	c, w := testContext(t)

	respondError(c, errors.New("mongo: connection refused to 10.0.0.7"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.7")
}

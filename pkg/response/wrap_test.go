package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleksMarkov/LumenTask-server/pkg/apperr"
)

func performRequest(t *testing.T, fn HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/test", Wrap(fn))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestWrap_NilError_LeavesResponseAlone(t *testing.T) {
	w, body := performRequest(t, func(c *gin.Context) error {
		Success(c, gin.H{"ok": true})
		return nil
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
}

func TestWrap_AppError_RendersCarriedStatus(t *testing.T) {
	w, body := performRequest(t, func(c *gin.Context) error {
		return apperr.NotFound("user not found")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, apperr.CodeNotFound, body.Error.Code)
	assert.Equal(t, "user not found", body.Error.Message)
}

func TestWrap_UnknownError_Becomes500WithoutDetail(t *testing.T) {
	w, body := performRequest(t, func(c *gin.Context) error {
		return errors.New("pq: connection refused")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, apperr.CodeInternal, body.Error.Code)
	assert.NotContains(t, body.Error.Message, "pq:")
}

func TestWrap_ErrorRenderedExactlyOnce(t *testing.T) {
	w, _ := performRequest(t, func(c *gin.Context) error {
		return apperr.BadRequest("please attach the avatar file")
	})

	// A double render would append a second JSON document to the body.
	var body Response
	dec := json.NewDecoder(w.Body)
	require.NoError(t, dec.Decode(&body))
	assert.False(t, dec.More())
}

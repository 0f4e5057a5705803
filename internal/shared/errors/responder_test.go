package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errMissing = stderrors.New("widget missing")

func newContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return c, rec
}

func TestResponder_MapsSentinels(t *testing.T) {
	r := NewResponder("", Sentinel(errMissing, ErrNotFound))
	c, rec := newContext("/v1/widgets/1")

	r.RespondError(c, fmt.Errorf("lookup: %w", errMissing))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, TypeNotFound, body.Type)
	require.Equal(t, "lookup: widget missing", body.Detail)
	require.Equal(t, "/v1/widgets/1", body.Instance)
}

func TestResponder_UnknownErrorIsInternal(t *testing.T) {
	r := NewResponder("https://collections.example")
	problem := r.Problem(stderrors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, problem.Status)

	c, rec := newContext("/x")
	r.RespondError(c, stderrors.New("boom"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "https://collections.example"+TypeInternal, body.Type)
}

func TestResponder_RecoveryRendersProblem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewResponder("")
	router := gin.New()
	router.Use(r.Recovery(nil))
	router.GET("/panic", func(*gin.Context) { panic("no provider") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "no provider")
}

func TestWithExtensionDoesNotAliasTemplate(t *testing.T) {
	p := NewNotFoundProblem("favorite", "f1")
	require.Equal(t, "favorite", p.Extensions["resourceType"])
	require.Nil(t, ErrNotFound.Extensions)
	require.Equal(t, http.StatusNotFound, HTTPStatusFromError(p))
}

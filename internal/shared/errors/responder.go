package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for problem responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper turns a known error into a problem.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Sentinel maps any error wrapping target onto template, carrying the error text as detail.
func Sentinel(target error, template ProblemDetail) ErrorMapper {
	return func(err error) (ProblemDetail, bool) {
		if errors.Is(err, target) {
			return template.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	}
}

// Responder writes problem+json responses. Mappers are tried in order before
// falling back to a 500.
type Responder struct {
	BaseURI string
	mappers []ErrorMapper
}

func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// Respond sends problem, defaulting its instance to the request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err and responds.
func (r *Responder) RespondError(c *gin.Context, err error) {
	r.Respond(c, r.Problem(err))
}

// Problem resolves err to a problem without writing it.
func (r *Responder) Problem(err error) ProblemDetail {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	for _, mapper := range r.mappers {
		if p, ok := mapper(err); ok {
			return p
		}
	}
	return ErrInternal.WithDetail(err.Error())
}

// Recovery converts panics raised by handlers into 500 problems.
func (r *Responder) Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			detail := fmt.Sprint(rec)
			if logger != nil {
				logger.LogAttrs(c.Request.Context(), slog.LevelError, "handler panic",
					slog.String("path", c.Request.URL.Path),
					slog.String("panic", detail),
				)
			}
			r.Respond(c, ErrInternal.WithDetail(detail))
		}()
		c.Next()
	}
}

// HTTPStatusFromError extracts the status of a problem error.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}

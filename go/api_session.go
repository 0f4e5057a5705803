package fosterserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-petfoster-collections/internal/app/session"
	apierrors "github.com/Apurer/go-petfoster-collections/internal/shared/errors"
	"github.com/Apurer/go-petfoster-collections/internal/shared/notify"
)

// SessionAPI serves visitor-wide endpoints: toasts and reset.
type SessionAPI struct{}

func NewSessionAPI() SessionAPI { return SessionAPI{} }

// Toast is the HTTP representation of a notification.
type Toast struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (api *SessionAPI) provider(c *gin.Context) (*session.Provider, bool) {
	p, ok := providerFrom(c)
	if !ok {
		responder.Respond(c, apierrors.ErrSessionUnavailable.WithDetail("no visitor session mounted"))
		return nil, false
	}
	return p, true
}

// Get /v1/toasts
func (api *SessionAPI) ListToasts(c *gin.Context) {
	p, ok := api.provider(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, fromToasts(p.Toasts().List()))
}

// Delete /v1/toasts/:toastId
func (api *SessionAPI) DismissToast(c *gin.Context) {
	p, ok := api.provider(c)
	if !ok {
		return
	}
	id := c.Param("toastId")
	if !p.Toasts().Dismiss(id) {
		responder.Respond(c, apierrors.NewNotFoundProblem("toast", id))
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/session/reset
// Clears both collections and purges their stored copies.
func (api *SessionAPI) ResetSession(c *gin.Context) {
	p, ok := api.provider(c)
	if !ok {
		return
	}
	if err := p.Reset(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func fromToasts(toasts []notify.Toast) []Toast {
	out := make([]Toast, 0, len(toasts))
	for _, t := range toasts {
		out = append(out, Toast{ID: t.ID, Level: string(t.Level), Message: t.Message, CreatedAt: t.CreatedAt})
	}
	return out
}

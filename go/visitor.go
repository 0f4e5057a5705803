package fosterserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Apurer/go-petfoster-collections/internal/app/session"
)

const (
	DefaultVisitorHeader = "X-Visitor-ID"
	VisitorCookie        = "visitor_id"

	sessionContextKey = "fosterserver.session"
	visitorCookieAge  = 365 * 24 * 60 * 60
)

// SessionSource resolves the provider of a visitor.
type SessionSource interface {
	Get(ctx context.Context, visitorID string) (*session.Provider, error)
}

// VisitorSession identifies the visitor from header, then cookie, minting a
// new id when neither is present, and attaches its session provider to the
// request context.
func VisitorSession(sessions SessionSource, header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultVisitorHeader
	}
	return func(c *gin.Context) {
		visitorID := strings.TrimSpace(c.GetHeader(header))
		if visitorID == "" {
			if cookie, err := c.Cookie(VisitorCookie); err == nil {
				visitorID = strings.TrimSpace(cookie)
			}
		}
		if visitorID == "" {
			visitorID = uuid.NewString()
		}
		provider, err := sessions.Get(c.Request.Context(), visitorID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(VisitorCookie, visitorID, visitorCookieAge, "/", "", false, true)
		c.Header(header, visitorID)
		c.Set(sessionContextKey, provider)
		c.Request = c.Request.WithContext(provider.Attach(c.Request.Context()))
		c.Next()
	}
}

func providerFrom(c *gin.Context) (*session.Provider, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	provider, ok := value.(*session.Provider)
	return provider, ok && provider != nil
}

package fosterserver

import (
	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-petfoster-collections/internal/app/session"
	cartapp "github.com/Apurer/go-petfoster-collections/internal/domains/cart/application"
	cartports "github.com/Apurer/go-petfoster-collections/internal/domains/cart/ports"
	favapp "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/application"
	favports "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/ports"
	apierrors "github.com/Apurer/go-petfoster-collections/internal/shared/errors"
)

var responder = apierrors.NewResponder("",
	apierrors.Sentinel(cartapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Sentinel(favapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Sentinel(session.ErrInvalidVisitor, apierrors.ErrBadRequest),
	apierrors.Sentinel(favports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Sentinel(cartports.ErrOutsideProvider, apierrors.ErrSessionUnavailable),
	apierrors.Sentinel(favports.ErrOutsideProvider, apierrors.ErrSessionUnavailable),
)

// Responder exposes the problem responder so hosts can share its recovery middleware.
func Responder() *apierrors.Responder { return responder }

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

package fosterserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	favmapper "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/adapters/http/mapper"
	favports "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/ports"
	apierrors "github.com/Apurer/go-petfoster-collections/internal/shared/errors"
)

// FavoritesAPI serves the favorites of the visitor attached to the request.
type FavoritesAPI struct{}

func NewFavoritesAPI() FavoritesAPI { return FavoritesAPI{} }

func (api *FavoritesAPI) favorites(c *gin.Context) (favports.Service, bool) {
	svc, err := favports.FromContext(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return svc, true
}

// Get /v1/favorites
func (api *FavoritesAPI) GetFavorites(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	proj, err := svc.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favmapper.FromProjection(proj))
}

// Get /v1/favorites/badge
func (api *FavoritesAPI) GetFavoritesBadge(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	proj, err := svc.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favmapper.ToBadge(proj))
}

// Delete /v1/favorites
func (api *FavoritesAPI) ClearFavorites(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	proj, err := svc.Clear(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favmapper.FromProjection(proj))
}

// Post /v1/favorites/items
// Favoriting a listing twice keeps one entry.
func (api *FavoritesAPI) AddFavorite(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	var payload favmapper.FosterService
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	proj, err := svc.Add(c.Request.Context(), favmapper.ToAddInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favmapper.FromProjection(proj))
}

// Get /v1/favorites/items/:serviceId
func (api *FavoritesAPI) GetFavorite(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	id := c.Param("serviceId")
	service, err := svc.Get(c.Request.Context(), id)
	if errors.Is(err, favports.ErrNotFound) {
		responder.Respond(c, apierrors.NewNotFoundProblem("favorite", id))
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favmapper.FromDomain(service))
}

// Delete /v1/favorites/items/:serviceId
func (api *FavoritesAPI) RemoveFavorite(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	proj, err := svc.Remove(c.Request.Context(), c.Param("serviceId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favmapper.FromProjection(proj))
}

// Post /v1/favorites/items/:serviceId/toggle
// The body carries the listing snapshot used when the toggle adds it; it may
// be empty when the listing is already a favorite.
func (api *FavoritesAPI) ToggleFavorite(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	var payload favmapper.FosterService
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, err)
		return
	}
	payload.ID = c.Param("serviceId")
	member, proj, err := svc.Toggle(c.Request.Context(), favmapper.ToAddInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favmapper.Membership{ID: payload.ID, Member: member, Favorites: favmapper.FromProjection(proj)})
}

// Post /v1/favorites/panel/toggle
func (api *FavoritesAPI) ToggleFavoritesPanel(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	proj, err := svc.TogglePanel(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favmapper.FromProjection(proj))
}

// Post /v1/favorites/panel/close
func (api *FavoritesAPI) CloseFavoritesPanel(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	proj, err := svc.ClosePanel(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favmapper.FromProjection(proj))
}

// Post /v1/favorites/continue
func (api *FavoritesAPI) ContinueBrowsing(c *gin.Context) {
	svc, ok := api.favorites(c)
	if !ok {
		return
	}
	location, proj, err := svc.ContinueBrowsing(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", location)
	c.JSON(http.StatusOK, favmapper.Continue{Location: location, Favorites: favmapper.FromProjection(proj)})
}

package fosterserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is one HTTP endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers served by the router.
type ApiHandleFunctions struct {
	CartAPI      CartAPI
	FavoritesAPI FavoritesAPI
	SessionAPI   SessionAPI
}

// NewRouter returns a gin engine serving every route behind the visitor middleware.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, middleware...)
}

// NewRouterWithGinEngine registers the routes on router. middleware runs
// before every collection route; it is where the visitor session is mounted.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	group := router.Group("/", middleware...)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		group.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"GetCart", http.MethodGet, "/v1/cart", h.CartAPI.GetCart},
		{"GetCartBadge", http.MethodGet, "/v1/cart/badge", h.CartAPI.GetCartBadge},
		{"ClearCart", http.MethodDelete, "/v1/cart", h.CartAPI.ClearCart},
		{"AddCartItem", http.MethodPost, "/v1/cart/items", h.CartAPI.AddCartItem},
		{"UpdateCartItem", http.MethodPatch, "/v1/cart/items/:productId", h.CartAPI.UpdateCartItem},
		{"RemoveCartItem", http.MethodDelete, "/v1/cart/items/:productId", h.CartAPI.RemoveCartItem},
		{"ToggleCartPanel", http.MethodPost, "/v1/cart/panel/toggle", h.CartAPI.ToggleCartPanel},
		{"CloseCartPanel", http.MethodPost, "/v1/cart/panel/close", h.CartAPI.CloseCartPanel},
		{"ContinueShopping", http.MethodPost, "/v1/cart/continue", h.CartAPI.ContinueShopping},

		{"GetFavorites", http.MethodGet, "/v1/favorites", h.FavoritesAPI.GetFavorites},
		{"GetFavoritesBadge", http.MethodGet, "/v1/favorites/badge", h.FavoritesAPI.GetFavoritesBadge},
		{"ClearFavorites", http.MethodDelete, "/v1/favorites", h.FavoritesAPI.ClearFavorites},
		{"AddFavorite", http.MethodPost, "/v1/favorites/items", h.FavoritesAPI.AddFavorite},
		{"GetFavorite", http.MethodGet, "/v1/favorites/items/:serviceId", h.FavoritesAPI.GetFavorite},
		{"RemoveFavorite", http.MethodDelete, "/v1/favorites/items/:serviceId", h.FavoritesAPI.RemoveFavorite},
		{"ToggleFavorite", http.MethodPost, "/v1/favorites/items/:serviceId/toggle", h.FavoritesAPI.ToggleFavorite},
		{"ToggleFavoritesPanel", http.MethodPost, "/v1/favorites/panel/toggle", h.FavoritesAPI.ToggleFavoritesPanel},
		{"CloseFavoritesPanel", http.MethodPost, "/v1/favorites/panel/close", h.FavoritesAPI.CloseFavoritesPanel},
		{"ContinueBrowsing", http.MethodPost, "/v1/favorites/continue", h.FavoritesAPI.ContinueBrowsing},

		{"ListToasts", http.MethodGet, "/v1/toasts", h.SessionAPI.ListToasts},
		{"DismissToast", http.MethodDelete, "/v1/toasts/:toastId", h.SessionAPI.DismissToast},
		{"ResetSession", http.MethodPost, "/v1/session/reset", h.SessionAPI.ResetSession},
	}
}

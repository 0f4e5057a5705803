package fosterserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/go-petfoster-collections/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/go-petfoster-collections/internal/domains/cart/ports"
)

// CartAPI serves the cart of the visitor attached to the request.
type CartAPI struct{}

func NewCartAPI() CartAPI { return CartAPI{} }

// cart resolves the visitor's cart or answers with a problem.
func (api *CartAPI) cart(c *gin.Context) (cartports.Service, bool) {
	svc, err := cartports.FromContext(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return svc, true
}

// Get /v1/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	svc, ok := api.cart(c)
	if !ok {
		return
	}
	proj, err := svc.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromProjection(proj))
}

// Get /v1/cart/badge
func (api *CartAPI) GetCartBadge(c *gin.Context) {
	svc, ok := api.cart(c)
	if !ok {
		return
	}
	proj, err := svc.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.ToBadge(proj))
}

// Delete /v1/cart
// Empties the cart and purges its stored copy.
func (api *CartAPI) ClearCart(c *gin.Context) {
	svc, ok := api.cart(c)
	if !ok {
		return
	}
	proj, err := svc.Clear(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromProjection(proj))
}

// Post /v1/cart/items
// Adds a product snapshot; an existing product gets its quantity increased.
func (api *CartAPI) AddCartItem(c *gin.Context) {
	svc, ok := api.cart(c)
	if !ok {
		return
	}
	var payload cartmapper.AddItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	proj, err := svc.Add(c.Request.Context(), cartmapper.ToAddItemInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromProjection(proj))
}

// Patch /v1/cart/items/:productId
// A quantity below one removes the product.
func (api *CartAPI) UpdateCartItem(c *gin.Context) {
	svc, ok := api.cart(c)
	if !ok {
		return
	}
	var payload cartmapper.UpdateQuantity
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	proj, err := svc.UpdateQuantity(c.Request.Context(), c.Param("productId"), *payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromProjection(proj))
}

// Delete /v1/cart/items/:productId
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	svc, ok := api.cart(c)
	if !ok {
		return
	}
	proj, err := svc.Remove(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromProjection(proj))
}

// Post /v1/cart/panel/toggle
func (api *CartAPI) ToggleCartPanel(c *gin.Context) {
	svc, ok := api.cart(c)
	if !ok {
		return
	}
	proj, err := svc.TogglePanel(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromProjection(proj))
}

// Post /v1/cart/panel/close
func (api *CartAPI) CloseCartPanel(c *gin.Context) {
	svc, ok := api.cart(c)
	if !ok {
		return
	}
	proj, err := svc.ClosePanel(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromProjection(proj))
}

// Post /v1/cart/continue
func (api *CartAPI) ContinueShopping(c *gin.Context) {
	svc, ok := api.cart(c)
	if !ok {
		return
	}
	location, proj, err := svc.ContinueShopping(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", location)
	c.JSON(http.StatusOK, cartmapper.Continue{Location: location, Cart: cartmapper.FromProjection(proj)})
}

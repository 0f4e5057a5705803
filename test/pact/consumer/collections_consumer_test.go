//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-petfoster-collections/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type cartPayload struct {
	Items      []json.RawMessage `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice string            `json:"totalPrice"`
	IsEmpty    bool              `json:"isEmpty"`
}

type membershipPayload struct {
	ID     string `json:"id"`
	Member bool   `json:"member"`
}

type apiError struct {
	status int
	title  string
}

func (e apiError) Error() string { return fmt.Sprintf("%s (status %d)", e.title, e.status) }

func TestWebCollectionsContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	product := pacttest.ExampleProductPayload()
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	entryMatcher := matchers.Map{
		"product": matchers.Map{
			"id":    matchers.Like(pacttest.ExistingProductID),
			"name":  matchers.Like("Salmon Kibble"),
			"price": matchers.Like("19.99"),
		},
		"quantity":  matchers.Like(1),
		"lineTotal": matchers.Like("19.99"),
	}
	cartMatcher := matchers.Map{
		"items":      matchers.ArrayMinLike(entryMatcher, 1),
		"totalItems": matchers.Like(1),
		"totalPrice": matchers.Like("19.99"),
		"isOpen":     matchers.Like(false),
		"isEmpty":    matchers.Like(false),
	}

	pact.AddInteraction().
		Given(pacttest.StateCartEmpty).
		UponReceiving("a request to add a product to the cart").
		WithRequest("POST", "/v1/cart/items", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header(pacttest.VisitorHeader, matchers.S(pacttest.VisitorID))
			b.JSONBody(map[string]any{"product": product, "quantity": 1})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(cartMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateCartHasProduct).
		UponReceiving("a request for the visitor's cart").
		WithRequest("GET", "/v1/cart", func(b *pactconsumer.V2RequestBuilder) {
			b.Header(pacttest.VisitorHeader, matchers.S(pacttest.VisitorID))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(cartMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateFavoriteExists).
		UponReceiving("a request to toggle an existing favorite").
		WithRequest("POST", "/v1/favorites/items/"+pacttest.ExistingServiceID+"/toggle", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header(pacttest.VisitorHeader, matchers.S(pacttest.VisitorID))
			b.JSONBody(pacttest.ExampleServicePayload())
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":     matchers.S(pacttest.ExistingServiceID),
				"member": matchers.Like(false),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateFavoriteMissing).
		UponReceiving("a request for a missing favorite").
		WithRequest("GET", "/v1/favorites/items/"+pacttest.MissingServiceID, func(b *pactconsumer.V2RequestBuilder) {
			b.Header(pacttest.VisitorHeader, matchers.S(pacttest.VisitorID))
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newCollectionsClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cart, err := client.AddToCart(ctx, product)
		if err != nil {
			return fmt.Errorf("add to cart: %w", err)
		}
		if cart.IsEmpty || len(cart.Items) == 0 {
			return fmt.Errorf("expected a non-empty cart, got %+v", cart)
		}

		cart, err = client.GetCart(ctx)
		if err != nil {
			return fmt.Errorf("get cart: %w", err)
		}
		if cart.TotalItems == 0 {
			return fmt.Errorf("expected cart items, got %+v", cart)
		}

		membership, err := client.ToggleFavorite(ctx, pacttest.ExistingServiceID, pacttest.ExampleServicePayload())
		if err != nil {
			return fmt.Errorf("toggle favorite: %w", err)
		}
		if membership.Member {
			return fmt.Errorf("expected %s to be removed", pacttest.ExistingServiceID)
		}

		if err := client.GetFavorite(ctx, pacttest.MissingServiceID); err == nil {
			return fmt.Errorf("expected 404 for favorite %s", pacttest.MissingServiceID)
		} else if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

type collectionsClient struct {
	baseURL    string
	httpClient *http.Client
}

func newCollectionsClient(config pactconsumer.MockServerConfig) *collectionsClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &collectionsClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *collectionsClient) AddToCart(ctx context.Context, product map[string]any) (*cartPayload, error) {
	var out cartPayload
	err := c.do(ctx, http.MethodPost, "/v1/cart/items", map[string]any{"product": product, "quantity": 1}, &out)
	return &out, err
}

func (c *collectionsClient) GetCart(ctx context.Context) (*cartPayload, error) {
	var out cartPayload
	err := c.do(ctx, http.MethodGet, "/v1/cart", nil, &out)
	return &out, err
}

func (c *collectionsClient) ToggleFavorite(ctx context.Context, id string, listing map[string]any) (*membershipPayload, error) {
	var out membershipPayload
	err := c.do(ctx, http.MethodPost, "/v1/favorites/items/"+id+"/toggle", listing, &out)
	return &out, err
}

func (c *collectionsClient) GetFavorite(ctx context.Context, id string) error {
	var out map[string]any
	return c.do(ctx, http.MethodGet, "/v1/favorites/items/"+id, nil, &out)
}

func (c *collectionsClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(pacttest.VisitorHeader, pacttest.VisitorID)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		var problem struct {
			Title string `json:"title"`
		}
		_ = json.NewDecoder(res.Body).Decode(&problem)
		return apiError{status: res.StatusCode, title: problem.Title}
	}
	return json.NewDecoder(res.Body).Decode(out)
}

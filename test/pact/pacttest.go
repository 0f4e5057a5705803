//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "petfoster-collections"
	ConsumerName = "petfoster-web"

	VisitorHeader = "X-Visitor-ID"
	VisitorID     = "pact-visitor"

	StateCartEmpty       = "visitor pact-visitor has an empty cart"
	StateCartHasProduct  = "visitor pact-visitor has product p-101 in the cart"
	StateFavoriteExists  = "visitor pact-visitor has favorite fs-201"
	StateFavoriteMissing = "visitor pact-visitor has no favorite fs-404"
)

const (
	ExistingProductID = "p-101"
	ExistingServiceID = "fs-201"
	MissingServiceID  = "fs-404"
)

// ExampleProductPayload is the product snapshot posted by the storefront.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":       ExistingProductID,
		"name":     "Salmon Kibble",
		"category": "food",
		"price":    "19.99",
		"discount": "0",
	}
}

// ExampleServicePayload is the foster listing snapshot posted by the browse page.
func ExampleServicePayload() map[string]any {
	return map[string]any{
		"id":           ExistingServiceID,
		"title":        "Cozy Farm Stay",
		"providerName": "Green Acres",
		"location":     "Springfield",
		"species":      []string{"dog", "cat"},
		"nightlyRate":  "35",
		"rating":       4.5,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

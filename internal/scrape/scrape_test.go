package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/fetch"
)

const listingHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Acme Moisturizing Lotion 200ml - MegaMart</title>
  <meta property="og:title" content="Acme Moisturizing Lotion 200ml">
  <meta name="description" content="Daily moisturizing lotion for dry skin.">
  <meta itemprop="price" content="499">
</head>
<body>
  <h1>Acme Moisturizing Lotion 200ml</h1>
  <p>Sold by: Acme Retail Pvt Ltd</p>
  <table id="tech">
    <tr><th>Brand</th><td>Acme</td></tr>
    <tr><th>Country of Origin</th><td>India</td></tr>
    <tr><th>Manufacturer</th><td>Acme Industries, Pune</td></tr>
  </table>
  <ul>
    <li>Usage: Apply twice daily</li>
    <li>Hypoallergenic formula</li>
  </ul>
  <p>Easy 10 day return policy. Free delivery by Thursday.</p>
</body>
</html>`

func TestParse_ExtractsListingFields(t *testing.T) {
	p, err := Parse("https://shop.example/acme-lotion", []byte(listingHTML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Title != "Acme Moisturizing Lotion 200ml" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.Price != "499" {
		t.Fatalf("price = %q", p.Price)
	}
	if !strings.HasPrefix(p.Seller, "Acme Retail") {
		t.Fatalf("seller = %q", p.Seller)
	}
	if p.Description != "Daily moisturizing lotion for dry skin." {
		t.Fatalf("description = %q", p.Description)
	}
	for _, segment := range []string{"Brand: Acme", "Country of Origin: India", "Usage: Apply twice daily"} {
		if !strings.Contains(p.TechnicalDetails, segment) {
			t.Fatalf("technical details %q missing segment %q", p.TechnicalDetails, segment)
		}
	}
	if !strings.Contains(strings.ToLower(p.Returns), "return") {
		t.Fatalf("returns = %q", p.Returns)
	}
	if !strings.Contains(strings.ToLower(p.Delivery), "delivery") {
		t.Fatalf("delivery = %q", p.Delivery)
	}
}

func TestParse_SparsePageYieldsEmptyFields(t *testing.T) {
	p, err := Parse("https://shop.example/x", []byte("<html><body><p>hello</p></body></html>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Title != "" || p.Seller != "" || p.TechnicalDetails != "" {
		t.Fatalf("expected empty fields, got %+v", p)
	}
}

func TestFetch_WrapsNetworkFailureAsErrFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := &Scraper{Client: &fetch.Client{MaxAttempts: 1}}
	if _, err := s.Fetch(context.Background(), srv.URL); !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestFetch_ReturnsPageBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer srv.Close()

	s := &Scraper{Client: &fetch.Client{MaxAttempts: 1}}
	body, err := s.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(body) == 0 {
		t.Fatal("empty body")
	}
}

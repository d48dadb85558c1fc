package feeds

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Product holds the hints a barcode lookup yields. They are only used to
// prefill the item creation form on the client.
type Product struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Quantity string `json:"quantity"`
	ImageURL string `json:"image_url"`
}

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		Categories  string `json:"categories"`
		Quantity    string `json:"quantity"`
		ImageURL    string `json:"image_url"`
	} `json:"product"`
}

// ProductClient queries the Open Food Facts barcode database.
type ProductClient struct {
	http *resty.Client
}

// NewProductClient creates a client against the given base URL
// (https://world.openfoodfacts.org in production).
func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// ByBarcode looks up a product. Returns nil if the barcode is unknown.
func (c *ProductClient) ByBarcode(ctx context.Context, barcode string) (*Product, error) {
	var out productResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("barcode", barcode).
		SetResult(&out).
		Get("/api/v0/product/{barcode}.json")
	if err != nil {
		return nil, fmt.Errorf("looking up barcode %s: %w", barcode, err)
	}
	// Open Food Facts reports unknown barcodes as 404 with status 0 in the
	// body; treat both the same.
	if resp.StatusCode() == 404 || out.Status == 0 {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("product feed returned %s", resp.Status())
	}

	return &Product{
		Barcode:  barcode,
		Name:     out.Product.ProductName,
		Brand:    out.Product.Brands,
		Category: out.Product.Categories,
		Quantity: out.Product.Quantity,
		ImageURL: out.Product.ImageURL,
	}, nil
}

// Package feeds contains clients for the read-only public food feeds:
// FDA enforcement recalls, TheMealDB recipes, and Open Food Facts barcode
// lookups. The feeds are consumed as opaque JSON; only the fields the app
// displays are extracted.
package feeds

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Recall is a single FDA food enforcement report.
type Recall struct {
	RecallNumber        string `json:"recall_number"`
	ProductDescription  string `json:"product_description"`
	ReasonForRecall     string `json:"reason_for_recall"`
	Classification      string `json:"classification"`
	Status              string `json:"status"`
	RecallingFirm       string `json:"recalling_firm"`
	City                string `json:"city"`
	State               string `json:"state"`
	Country             string `json:"country"`
	DistributionPattern string `json:"distribution_pattern"`
	InitiationDate      string `json:"recall_initiation_date"`
	ReportDate          string `json:"report_date"`
}

type recallResponse struct {
	Results []Recall `json:"results"`
}

// RecallClient queries the openFDA food enforcement feed.
type RecallClient struct {
	http *resty.Client
}

// NewRecallClient creates a client against the given base URL
// (https://api.fda.gov in production).
func NewRecallClient(baseURL string, timeout time.Duration) *RecallClient {
	return &RecallClient{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// Recent returns the most recent food recalls, newest report first.
func (c *RecallClient) Recent(ctx context.Context, limit int) ([]Recall, error) {
	var out recallResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetQueryParam("sort", "report_date:desc").
		SetResult(&out).
		Get("/food/enforcement.json")
	if err != nil {
		return nil, fmt.Errorf("fetching recalls: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("recall feed returned %s", resp.Status())
	}
	return out.Results, nil
}

// Package nutritionapi is a client for the CalorieNinjas nutrition
// endpoint. Every failure is reported as
// common.ErrExternalServiceUnavailable so callers can fall back.
package nutritionapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
)

const apiKeyHeader = "X-Api-Key"

type item struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbohydrates_total_g"`
	Fat      float64 `json:"fat_total_g"`
}

type response struct {
	Items []item `json:"items"`
}

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// New returns a client that gives up after timeout. An empty apiKey
// disables the client.
func New(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != "" && c.endpoint != ""
}

// Lookup makes a single request for query. Values are rounded to one
// decimal place; items without a name are labelled with the query.
func (c *Client) Lookup(ctx context.Context, query string) ([]models.NutritionFact, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%w: no api key configured", common.ErrExternalServiceUnavailable)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalServiceUnavailable, err)
	}
	q := u.Query()
	q.Set("query", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalServiceUnavailable, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", common.ErrExternalServiceUnavailable, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", common.ErrExternalServiceUnavailable, err)
	}
	if len(body.Items) == 0 {
		return nil, fmt.Errorf("%w: no items", common.ErrExternalServiceUnavailable)
	}

	res := make([]models.NutritionFact, 0, len(body.Items))
	for _, it := range body.Items {
		name := it.Name
		if name == "" {
			name = query
		}
		res = append(res, models.NutritionFact{
			Name:     name,
			Calories: round1(it.Calories),
			Protein:  round1(it.Protein),
			Carbs:    round1(it.Carbs),
			Fat:      round1(it.Fat),
		})
	}
	return res, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Package orders queries the external orders API for review candidates:
// orders delivered inside a given window that have not been reviewed yet.
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/storelab/review-gateway/internal/model"
	"github.com/storelab/review-gateway/internal/window"
)

const adminSecretHeader = "x-hasura-admin-secret"

const reviewRequestQuery = `query ReviewRequestQuery($after: timestamptz!, $before: timestamptz!) {
  orders(where: {delivery_date: {_gte: $after, _lte: $before}, is_reviewed: {_eq: false}}) {
    id
    delivery_date
    is_reviewed
    user {
      id
      name
      email
    }
    product {
      id
      name
    }
  }
}`

// ErrUpstream marks any failure of the orders query: transport errors,
// non-2xx responses, malformed bodies, GraphQL errors. The caller treats
// all of them as fatal for the invocation.
var ErrUpstream = fmt.Errorf("orders upstream failure")

type Client struct {
	endpoint    string
	adminSecret string
	httpc       *http.Client
}

func NewClient(endpoint, adminSecret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint:    endpoint,
		adminSecret: adminSecret,
		httpc:       &http.Client{Timeout: timeout},
	}
}

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		// Pointer so an absent data.orders is distinguishable from an
		// empty result set.
		Orders *[]model.Order `json:"orders"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchReviewCandidates runs ReviewRequestQuery for the given window and
// returns the qualifying orders. The returned slice is non-nil on success,
// empty when no order qualifies.
func (c *Client) FetchReviewCandidates(ctx context.Context, w window.Window) ([]model.Order, error) {
	body, err := json.Marshal(graphqlRequest{
		Query: reviewRequestQuery,
		Variables: map[string]string{
			"after":  w.StartString(),
			"before": w.EndString(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal query: %v", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.adminSecret != "" {
		req.Header.Set(adminSecretHeader, c.adminSecret)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: status=%d", ErrUpstream, res.StatusCode)
	}

	var out graphqlResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("%w: graphql: %s", ErrUpstream, out.Errors[0].Message)
	}

	if out.Data.Orders == nil {
		return nil, fmt.Errorf("%w: response missing data.orders", ErrUpstream)
	}

	return *out.Data.Orders, nil
}

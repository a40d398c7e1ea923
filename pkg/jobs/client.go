package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GraphQLClient is a minimal client for the CRM endpoint. Requests are
// retried a bounded number of times; the timeout applies per attempt.
type GraphQLClient struct {
	endpoint string
	client   *http.Client
	retries  int
	log      *logrus.Logger
}

func NewGraphQLClient(endpoint string, timeout time.Duration, retries int, log *logrus.Logger) *GraphQLClient {
	if retries < 1 {
		retries = 1
	}
	return &GraphQLClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		retries:  retries,
		log:      log,
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Query executes the query and unmarshals the data object into out.
func (c *GraphQLClient) Query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.Wrap(err, "marshal graphql request")
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		if lastErr = c.do(ctx, body, out); lastErr == nil {
			return nil
		}
		c.log.WithError(lastErr).WithField("attempt", attempt).Warn("graphql request failed")
	}
	return lastErr
}

func (c *GraphQLClient) do(ctx context.Context, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build graphql request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "post graphql request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrap(err, "decode graphql response")
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.Wrap(err, "unmarshal graphql data")
		}
	}
	return nil
}

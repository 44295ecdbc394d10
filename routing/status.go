package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// GetTransactionStatus queries the settlement status of a transaction. A
// single point-in-time query per call; the surrounding flow drives repeated
// user-triggered polling.
//
// Parameters:
// - ctx: the context for managing the request.
// - chainID: the chain the transaction was submitted on.
// - txHash: the transaction hash.
//
// Returns:
// - *StatusResponse: the raw status reported by the service.
// - error: an error if the query fails.
func (c *Client) GetTransactionStatus(ctx context.Context, chainID int64, txHash string) (*StatusResponse, error) {
	query := url.Values{}
	query.Set("chainId", strconv.FormatInt(chainID, 10))
	query.Set("txHash", txHash)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/getStatus?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build status request")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query transaction status")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("status service returned %d", resp.StatusCode)
	}

	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, errors.Wrap(err, "failed to decode status response")
	}

	return &status, nil
}

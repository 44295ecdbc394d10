package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	commonerrors "github.com/dtechvision/mintframe/common/errors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Client talks to the liquidity-routing API that resolves cross-chain
// actions into executable transactions and reports their settlement status.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a routing API client. The default http.Client is used
// when none is given; timeouts are driven by the request context (the frame
// handler's request lifetime), not by the client.
func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetTransactionPlan resolves an ActionRequest into an executable transaction
// and the exact payment it requires. An unresolvable route (unsupported pair,
// no liquidity) or an unreachable service surfaces as ErrRoutingUnavailable;
// there is no silent default and no retry.
//
// Parameters:
// - ctx: the context for managing the request.
// - req: the action to resolve.
//
// Returns:
// - *TransactionPlan: the resolved plan.
// - error: an error wrapping ErrRoutingUnavailable if resolution fails.
func (c *Client) GetTransactionPlan(ctx context.Context, req *ActionRequest) (*TransactionPlan, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode action request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/getBoxAction", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build routing request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrRoutingUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(msg),
		}).Warn("routing service rejected action request")
		return nil, errors.Wrapf(commonerrors.ErrRoutingUnavailable, "routing service returned %d", resp.StatusCode)
	}

	var plan TransactionPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, errors.Wrap(commonerrors.ErrRoutingUnavailable, err.Error())
	}
	if plan.Tx.To == "" {
		return nil, errors.Wrap(commonerrors.ErrRoutingUnavailable, "plan has no target")
	}

	return &plan, nil
}

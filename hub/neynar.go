// Package hub validates signed frame actions against a Farcaster hub
// service. Signature verification itself is delegated to the hub; this
// package only carries the request/response contract.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public Neynar API endpoint.
const DefaultBaseURL = "https://api.neynar.com"

// ActionData is the verified view of a frame action.
//
// Fields:
// - FID: the interactor's Farcaster ID.
// - ButtonIndex: the pressed button, 1-based.
// - Address: the wallet address connected to the displayed frame, if any.
// - TransactionID: the hash of the transaction the wallet submitted, set on
//   post-transaction actions.
type ActionData struct {
	FID           int64
	ButtonIndex   int
	Address       string
	TransactionID string
}

// Validator validates signed frame action messages.
type Validator interface {
	ValidateAction(ctx context.Context, messageBytesHex string) (*ActionData, error)
}

// NeynarValidator validates frame actions via the Neynar hub API.
type NeynarValidator struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewNeynarValidator creates a hub validator authenticated with the given
// API key.
func NewNeynarValidator(apiKey, baseURL string, httpClient *http.Client, logger *logrus.Logger) *NeynarValidator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NeynarValidator{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type validateRequest struct {
	MessageBytesInHex string `json:"message_bytes_in_hex"`
}

type validateResponse struct {
	Valid  bool `json:"valid"`
	Action struct {
		Interactor struct {
			FID int64 `json:"fid"`
		} `json:"interactor"`
		TappedButton struct {
			Index int `json:"index"`
		} `json:"tapped_button"`
		Address     string `json:"address"`
		Transaction struct {
			Hash string `json:"hash"`
		} `json:"transaction"`
	} `json:"action"`
}

// ValidateAction submits the signed message bytes to the hub and returns the
// verified action data.
//
// Parameters:
// - ctx: the context for managing the request.
// - messageBytesHex: the hex-encoded signed frame action message.
//
// Returns:
// - *ActionData: the verified action data.
// - error: an error if the hub is unreachable or rejects the message.
func (v *NeynarValidator) ValidateAction(ctx context.Context, messageBytesHex string) (*ActionData, error) {
	body, err := json.Marshal(validateRequest{MessageBytesInHex: messageBytesHex})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode validate request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.baseURL+"/v2/farcaster/frame/validate", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build validate request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api_key", v.apiKey)

	resp, err := v.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reach verification hub")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("verification hub returned %d", resp.StatusCode)
	}

	var decoded validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "failed to decode validate response")
	}
	if !decoded.Valid {
		return nil, errors.New("frame action signature is invalid")
	}

	return &ActionData{
		FID:           decoded.Action.Interactor.FID,
		ButtonIndex:   decoded.Action.TappedButton.Index,
		Address:       decoded.Action.Address,
		TransactionID: decoded.Action.Transaction.Hash,
	}, nil
}

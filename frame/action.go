package frame

import (
	"encoding/json"
	"io"

	commonerrors "github.com/dtechvision/mintframe/common/errors"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

// CastID identifies the cast a frame was embedded in.
type CastID struct {
	FID  int64  `json:"fid"`
	Hash string `json:"hash"`
}

// UntrustedData is the client-reported action context. It must not be
// trusted for anything consequential unless confirmed by the verification
// hub; tests and local development run without a hub.
type UntrustedData struct {
	FID           int64  `json:"fid" validate:"required"`
	URL           string `json:"url"`
	ButtonIndex   int    `json:"buttonIndex" validate:"min=0,max=4"`
	CastID        CastID `json:"castId"`
	Address       string `json:"address"`
	TransactionID string `json:"transactionId"`
}

// TrustedData carries the signed frame action message for hub verification.
type TrustedData struct {
	MessageBytes string `json:"messageBytes"`
}

// ActionPayload is the body of a frame action POST.
type ActionPayload struct {
	UntrustedData UntrustedData `json:"untrustedData" validate:"required"`
	TrustedData   TrustedData   `json:"trustedData"`
}

// ParseAction decodes and validates a frame action payload.
func ParseAction(r io.Reader) (*ActionPayload, error) {
	var payload ActionPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAction, err.Error())
	}
	if err := validate.Struct(&payload); err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAction, err.Error())
	}
	return &payload, nil
}

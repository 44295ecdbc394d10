package config

import (
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/dtechvision/mintframe/common/types"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Config aggregates the service configuration. Everything is read once at
// startup from the environment and passed explicitly into each component.
type Config struct {
	Port     int
	BasePath string
	// FrameURL is the externally visible base URL; button targets and the
	// page discovery metadata are derived from it.
	FrameURL string `validate:"required,url"`

	// NeynarAPIKey authenticates frame action validation against the hub.
	// Empty disables hub verification (local development, tests).
	NeynarAPIKey  string
	NeynarBaseURL string

	// BoxAPIURL is the liquidity-routing service base URL.
	BoxAPIURL string `validate:"required,url"`
	BoxAPIKey string

	// ContractAddress is the mint contract on the destination chain.
	ContractAddress string `validate:"required,eth_addr"`

	ImageURL         string `validate:"required,url"`
	ImageAspectRatio string
	// SuccessLinkAfterTx and SuccessLinkAtEnd are the terminal link
	// destinations of the two polling screens.
	SuccessLinkAfterTx string `validate:"required,url"`
	SuccessLinkAtEnd   string `validate:"required,url"`

	// SrcChain is the chain the connected wallet pays from; DstChainID is
	// where the mint executes.
	SrcChain   types.ChainConfig
	DstChainID int64

	MintCost               *big.Int
	ApproveCost            *big.Int
	Slippage               float64
	NativeThresholdPercent int64

	// PaymentTokens are the ERC-20 tokens scanned on the source chain when
	// selecting the payment token.
	PaymentTokens []string `validate:"dive,eth_addr"`
}

const (
	defaultPort      = 3000
	defaultBasePath  = "/api"
	defaultFrameURL  = "http://localhost:3000"
	defaultBoxAPIURL = "https://box-v1.api.decent.xyz/api"
	defaultImageURL  = "https://daily.prohibition.art/nfts/amber.jpg"
	defaultAspect    = "1:1"
	defaultLinkTx    = "https://proxyswap.tips"
	defaultLinkEnd   = "https://daily.prohibition.art"
	defaultRPCURL    = "https://mainnet.base.org"

	defaultChainName = "base"
	defaultChainID   = 8453

	// Cost tiers in wei: 0.0016 ether for the direct mint, 0.0008 ether for
	// the pre-approval route.
	defaultMintCostWei    = "1600000000000000"
	defaultApproveCostWei = "800000000000000"

	defaultSlippage        = 1.0
	defaultNativeThreshold = 25
)

// defaultPaymentTokens is the ERC-20 watchlist on Base: USDC, WETH, DAI.
var defaultPaymentTokens = []string{
	"0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	"0x4200000000000000000000000000000000000006",
	"0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb",
}

var validate = validator.New()

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	mintCost, err := weiOr("MINT_COST_WEI", defaultMintCostWei)
	if err != nil {
		return nil, err
	}
	approveCost, err := weiOr("APPROVE_COST_WEI", defaultApproveCostWei)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:          envOrInt("PORT", defaultPort),
		BasePath:      envOr("BASE_PATH", defaultBasePath),
		FrameURL:      strings.TrimRight(envOr("FRAME_URL", defaultFrameURL), "/"),
		NeynarAPIKey:  envOr("NEYNAR_API_KEY", ""),
		NeynarBaseURL: envOr("NEYNAR_BASE_URL", ""),
		BoxAPIURL:     envOr("BOX_API_URL", defaultBoxAPIURL),
		BoxAPIKey:     envOr("BOX_API_KEY", ""),

		ContractAddress: envOr("CONTRACT_ADDRESS", ""),

		ImageURL:           envOr("IMAGE_URL", defaultImageURL),
		ImageAspectRatio:   envOr("IMAGE_ASPECT_RATIO", defaultAspect),
		SuccessLinkAfterTx: envOr("SUCCESS_LINK", defaultLinkTx),
		SuccessLinkAtEnd:   envOr("END_SUCCESS_LINK", defaultLinkEnd),

		SrcChain: types.ChainConfig{
			Name:    envOr("CHAIN_NAME", defaultChainName),
			ChainID: envOrInt64("CHAIN_ID", defaultChainID),
			RpcUrl:  envOr("CHAIN_RPC_URL", defaultRPCURL),
		},
		DstChainID: envOrInt64("DST_CHAIN_ID", defaultChainID),

		MintCost:               mintCost,
		ApproveCost:            approveCost,
		Slippage:               envOrFloat("SLIPPAGE", defaultSlippage),
		NativeThresholdPercent: envOrInt64("NATIVE_THRESHOLD_PERCENT", defaultNativeThreshold),

		PaymentTokens: envOrList("PAYMENT_TOKENS", defaultPaymentTokens),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func envOrInt64(key string, fallback int64) int64 {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envOrFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envOrList(key string, fallback []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func weiOr(key, fallback string) (*big.Int, error) {
	raw := envOr(key, fallback)
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, errors.Errorf("%s: invalid wei amount %q", key, raw)
	}
	return amount, nil
}

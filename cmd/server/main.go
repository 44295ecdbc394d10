package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dtechvision/mintframe/balances"
	"github.com/dtechvision/mintframe/chainmanager"
	"github.com/dtechvision/mintframe/chains/evm"
	"github.com/dtechvision/mintframe/config"
	"github.com/dtechvision/mintframe/hub"
	"github.com/dtechvision/mintframe/mintflow"
	"github.com/dtechvision/mintframe/routing"
	"github.com/dtechvision/mintframe/server"
	"github.com/dtechvision/mintframe/sessions"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	ctx := context.Background()

	registry := chainmanager.NewChainRegistry(evm.NewEvmChain, logger)
	if err := registry.Add(ctx, &cfg.SrcChain); err != nil {
		logger.WithError(err).Fatal("failed to register source chain")
	}

	fetcher := balances.NewChainFetcher(registry, map[int64][]string{
		cfg.SrcChain.ChainID: cfg.PaymentTokens,
	}, logger)
	selector := balances.NewSelector(fetcher, logger)

	routingClient := routing.NewClient(cfg.BoxAPIURL, cfg.BoxAPIKey, nil, logger)

	flow := mintflow.NewFlow(mintflow.Config{
		ContractAddress:        cfg.ContractAddress,
		SrcChain:               cfg.SrcChain.ChainID,
		DstChain:               cfg.DstChainID,
		MintCost:               cfg.MintCost,
		ApproveCost:            cfg.ApproveCost,
		Slippage:               cfg.Slippage,
		NativeThresholdPercent: cfg.NativeThresholdPercent,
	}, selector, routingClient, routingClient, registry, logger)

	var validator hub.Validator
	if cfg.NeynarAPIKey != "" {
		validator = hub.NewNeynarValidator(cfg.NeynarAPIKey, cfg.NeynarBaseURL, nil, logger)
	} else {
		logger.Warn("no hub API key configured, frame actions will not be verified")
	}

	srv := server.NewServer(cfg, flow, validator, sessions.NewMemoryStore(), registry, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.WithError(err).Error("server stopped")
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown failed")
	}
}

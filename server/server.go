package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dtechvision/mintframe/common/types"
	"github.com/dtechvision/mintframe/config"
	"github.com/dtechvision/mintframe/hub"
	"github.com/dtechvision/mintframe/mintflow"
	"github.com/dtechvision/mintframe/sessions"
	"github.com/sirupsen/logrus"
)

// Server exposes the frame routes. Each incoming frame action is handled
// synchronously; the only state between requests is the per-session
// FrameState and the environment configuration read at startup.
type Server struct {
	cfg      *config.Config
	flow     *mintflow.Flow
	hub      hub.Validator
	sessions sessions.Store
	chains   types.ChainRegistry
	metrics  *metricsRegistry
	logger   *logrus.Logger

	httpServer *http.Server
}

// NewServer wires the frame routes. A nil validator disables hub
// verification and trusts the client-reported action data, which is only
// acceptable for local development and tests.
func NewServer(cfg *config.Config, flow *mintflow.Flow, validator hub.Validator, store sessions.Store, chains types.ChainRegistry, logger *logrus.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		flow:     flow,
		hub:      validator,
		sessions: store,
		chains:   chains,
		metrics:  newMetricsRegistry(),
		logger:   logger,
	}

	base := cfg.BasePath
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc(base, s.handleRoot)
	mux.HandleFunc(base+"/tx", s.frameAction("tx", s.handleTx))
	mux.HandleFunc(base+"/approve", s.frameAction("approve", s.handleApprove))
	mux.HandleFunc(base+"/tx-success", s.frameAction("tx-success", s.handleTxSuccess))
	mux.HandleFunc(base+"/end", s.frameAction("end", s.handleEnd))
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.metrics.handler())

	s.httpServer = &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("frame server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// frameAction wraps a frame action handler with method filtering and
// metrics.
func (s *Server) frameAction(route string, fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		start := time.Now()
		fn(w, r)
		s.metrics.observe(route, time.Since(start).Seconds())
	}
}

// absURL builds the externally visible URL of a frame route.
func (s *Server) absURL(path string) string {
	return s.cfg.FrameURL + s.cfg.BasePath + path
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	rpcInfo := struct {
		Connected bool   `json:"connected"`
		Error     string `json:"error,omitempty"`
	}{Connected: true}

	healthy := true
	if reader := s.chains.Get(s.cfg.SrcChain.ChainID); reader != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := reader.CheckConnection(ctx); err != nil {
			rpcInfo.Connected = false
			rpcInfo.Error = err.Error()
			healthy = false
		}
	}

	status := "healthy"
	if !healthy {
		status = "degraded"
	}

	resp := struct {
		Status            string      `json:"status"`
		RPC               interface{} `json:"rpc"`
		UniqueInteractors uint64      `json:"unique_interactors"`
	}{
		Status:            status,
		RPC:               rpcInfo,
		UniqueInteractors: s.metrics.uniqueInteractors(),
	}

	w.Header().Set("Content-Type", "application/json")
	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

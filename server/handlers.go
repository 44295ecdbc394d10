package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	commonerrors "github.com/dtechvision/mintframe/common/errors"
	"github.com/dtechvision/mintframe/frame"
	"github.com/dtechvision/mintframe/hub"
	"github.com/dtechvision/mintframe/mintflow"
	"github.com/pkg/errors"
)

// pollStage distinguishes the two polling screens; they branch identically
// but link out to different destinations.
type pollStage int

const (
	stageAfterTx pollStage = iota
	stageAtEnd
)

// handleLanding serves the root HTML page carrying the frame discovery
// metadata derived from the configured frame base URL.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	body := `<h1>go to <a href="https://dtech.vision">dTech</a></h1>`
	s.writeFrame(w, s.initialFrame(), body)
}

// handleRoot renders the initial mint prompt: a single transaction button
// targeting /tx with /tx-success as the post-action override.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeFrame(w, s.initialFrame(), "")
}

// handleTx is the mint transaction endpoint. It selects the payment token,
// resolves the cross-chain plan, gates on allowance and returns the
// executable transaction for the connected wallet.
func (s *Server) handleTx(w http.ResponseWriter, r *http.Request) {
	action, _, err := s.resolveAction(r)
	if err != nil {
		s.frameError(w, "tx", err)
		return
	}
	s.metrics.seenInteractor(action.Address)

	plan, err := s.flow.BuildMintTransaction(r.Context(), action.Address)
	if err != nil {
		s.frameError(w, "tx", err)
		return
	}

	s.metrics.incAction("tx", "resolved")
	s.writeJSON(w, frame.NewTxResponse(plan.ChainID, plan.To, plan.Data, plan.Value.String()))
}

// handleApprove is the approval transaction endpoint. When approval would be
// a no-op it reports that the mint can proceed directly.
func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	action, _, err := s.resolveAction(r)
	if err != nil {
		s.frameError(w, "approve", err)
		return
	}
	s.metrics.seenInteractor(action.Address)

	plan, err := s.flow.BuildApproveTransaction(r.Context(), action.Address)
	if err != nil {
		s.frameError(w, "approve", err)
		return
	}

	s.metrics.incAction("approve", "resolved")
	s.writeJSON(w, frame.NewTxResponse(plan.ChainID, plan.To, plan.Data, plan.Value.String()))
}

// handleTxSuccess is the post-transaction screen. It records the submitted
// transaction hash and source chain into the session state (a retried
// submission replaces the previous one, polls never do) and renders the poll
// outcome.
func (s *Server) handleTxSuccess(w http.ResponseWriter, r *http.Request) {
	action, key, err := s.resolveAction(r)
	if err != nil {
		s.frameError(w, "tx-success", err)
		return
	}

	state := s.sessions.Get(key)
	state = state.RecordTransaction(action.TransactionID, s.cfg.SrcChain.ChainID)
	s.sessions.Put(key, state)

	status, err := s.flow.PollTransaction(r.Context(), state)
	if err != nil {
		s.frameError(w, "tx-success", err)
		return
	}

	s.metrics.incAction("tx-success", string(status))
	s.writeFrame(w, s.pollFrame(mintflow.NextScreen(status), stageAfterTx), "")
}

// handleEnd is the secondary polling screen. It reuses the carried-over
// state, links out to a different destination on success, and self-loops
// while the transaction is still pending.
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	_, key, err := s.resolveAction(r)
	if err != nil {
		s.frameError(w, "end", err)
		return
	}

	status, err := s.flow.PollTransaction(r.Context(), s.sessions.Get(key))
	if err != nil {
		s.frameError(w, "end", err)
		return
	}

	s.metrics.incAction("end", string(status))
	s.writeFrame(w, s.pollFrame(mintflow.NextScreen(status), stageAtEnd), "")
}

// resolveAction parses the frame action payload and, when a hub validator is
// configured, replaces the client-reported fields with the hub-verified ones.
func (s *Server) resolveAction(r *http.Request) (*hub.ActionData, string, error) {
	payload, err := frame.ParseAction(r.Body)
	if err != nil {
		return nil, "", err
	}

	action := &hub.ActionData{
		FID:           payload.UntrustedData.FID,
		ButtonIndex:   payload.UntrustedData.ButtonIndex,
		Address:       payload.UntrustedData.Address,
		TransactionID: payload.UntrustedData.TransactionID,
	}
	if s.hub != nil {
		action, err = s.hub.ValidateAction(r.Context(), payload.TrustedData.MessageBytes)
		if err != nil {
			return nil, "", err
		}
	}

	return action, strconv.FormatInt(action.FID, 10), nil
}

func (s *Server) initialFrame() frame.Frame {
	return frame.Frame{
		Image:       s.cfg.ImageURL,
		AspectRatio: s.cfg.ImageAspectRatio,
		Buttons: []frame.Button{{
			Label:   "Mint Now",
			Action:  frame.ActionTx,
			Target:  s.absURL("/tx"),
			PostURL: s.absURL("/tx-success"),
		}},
	}
}

// pollFrame renders the three-way outcome of a polling screen: a terminal
// link on success, the mint transaction again on failure, and a
// check-status action while pending.
func (s *Server) pollFrame(kind mintflow.ScreenKind, stage pollStage) frame.Frame {
	f := frame.Frame{
		Image:       s.cfg.ImageURL,
		AspectRatio: s.cfg.ImageAspectRatio,
	}

	switch kind {
	case mintflow.ScreenSuccess:
		link := s.cfg.SuccessLinkAfterTx
		if stage == stageAtEnd {
			link = s.cfg.SuccessLinkAtEnd
		}
		f.Buttons = []frame.Button{{
			Label:  "Success, check it out",
			Action: frame.ActionLink,
			Target: link,
		}}
	case mintflow.ScreenRetry:
		f.Buttons = []frame.Button{{
			Label:   "Failed, try again",
			Action:  frame.ActionTx,
			Target:  s.absURL("/tx"),
			PostURL: s.absURL("/tx-success"),
		}}
	default:
		f.Buttons = []frame.Button{{
			Label:  "Processing... Check Status",
			Action: frame.ActionPost,
			Target: s.absURL("/end"),
		}}
	}

	return f
}

// frameError surfaces an error through the frame's error-display mechanism.
// Routing and chain failures are surfaced verbatim; the informational
// approval outcomes get their user-facing phrasing here.
func (s *Server) frameError(w http.ResponseWriter, route string, err error) {
	message := err.Error()
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, commonerrors.ErrApprovalRequired):
		message = "Requires approval"
	case errors.Is(err, commonerrors.ErrNoApprovalNeeded):
		message = "You can mint right away. Press Mint Now!"
	case errors.Is(err, commonerrors.ErrMissingAddress):
		message = "No wallet connected to this frame"
	}

	s.logger.WithField("route", route).WithError(err).Warn("frame action failed")
	s.metrics.incAction(route, "error")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(frame.ErrorResponse{Message: message})
}

func (s *Server) writeFrame(w http.ResponseWriter, f frame.Frame, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(f.RenderHTML("Mint Frame", body)))
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

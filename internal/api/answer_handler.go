// File path: internal/api/answer_handler.go
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"

	"github.com/parkworks/parkpilot/internal/common"
	"github.com/parkworks/parkpilot/internal/compose"
	"github.com/parkworks/parkpilot/internal/evidence"
)

const maxAnswerBody = 4 << 20

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxAnswerBody))
	if err != nil {
		logger.Warn("api: answer body read failed", "error", err, "request_id", requestID)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if result := s.requestSchema.ValidateJSON(body); !result.IsValid() {
		logger.Warn("api: answer body rejected by schema", "request_id", requestID)
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %v", result.Errors))
		return
	}
	var req answerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Warn("api: answer decode failed", "error", err, "request_id", requestID)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	nlu := evidence.NLUResult{RawQuery: req.Text}
	if req.NLU != nil {
		nlu = *req.NLU
	}
	var meta evidence.PlanMetadata
	if req.Plan != nil {
		meta = *req.Plan
	}

	var state evidence.ExecState
	switch {
	case req.State != nil:
		state = *req.State
	case s.executor != nil:
		executed, executedMeta, err := s.executor.Execute(r.Context(), nlu)
		if err != nil {
			logger.Error("api: executor failed", "error", err, "request_id", requestID)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		state = executed
		if meta.Template == "" {
			meta = executedMeta
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("no executor configured; request must include state"))
		return
	}
	if nlu.Intent == "" {
		nlu.Intent = deriveIntent(s.executor, nlu, state)
	}

	logger.Info("api: composing answer",
		"request_id", requestID,
		"intent", nlu.Intent,
		"status", state.Status,
		"template", evidence.TemplateHint(meta, state.Plan),
	)
	start := time.Now().UTC()
	payload := s.composer.Compose(r.Context(), nlu, state, meta)
	for _, entry := range common.LogEntriesSince(start) {
		if entry.Component == "compose" || entry.Component == "summarize" {
			payload.Logs = append(payload.Logs, entry)
		}
	}

	if digest := payloadDigest(payload); digest != "" {
		w.Header().Set("X-Answer-Digest", digest)
	}
	writeJSON(w, http.StatusOK, payload)
}

// deriveIntent fills a missing intent: the demo router first, then the
// shape of the gathered evidence.
func deriveIntent(executor Executor, nlu evidence.NLUResult, state evidence.ExecState) string {
	if router, ok := executor.(interface {
		RouteIntent(evidence.NLUResult) string
	}); ok {
		if intent := router.RouteIntent(nlu); intent != "" {
			return intent
		}
	}
	ev := state.Evidence
	switch {
	case ev.SQL != nil && len(ev.KBHits) > 0:
		return string(compose.IntentTabularRef)
	case ev.SQL != nil:
		return string(compose.IntentTabular)
	case ev.CV != nil && len(ev.KBHits) > 0:
		return string(compose.IntentVisionRef)
	case ev.CV != nil:
		return string(compose.IntentVision)
	case len(ev.KBHits) > 0 || ev.SOP != nil:
		return string(compose.IntentReference)
	}
	return ""
}

// payloadDigest returns the sha256 of the canonical (RFC 8785) payload
// JSON, letting clients dedupe identical answers without the server
// persisting anything.
func payloadDigest(payload compose.AnswerPayload) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/paddla/fair-core/internal/logging"
	"github.com/paddla/fair-core/internal/protocol"
	"github.com/paddla/fair-core/internal/store"
)

// Server handles the HTTP surface of the game core: commitment
// publication, game start/finish, and status lookups.
type Server struct {
	slot     *protocol.CommitmentSlot
	registry *protocol.Registry
	archive  store.DB // nil when running without persistence
	log      *logging.Logger

	gracePeriod time.Duration
}

// NewServer wires a Server over an already-running CommitmentSlot and
// Registry. archive may be nil: the core functions with no persistence.
func NewServer(slot *protocol.CommitmentSlot, registry *protocol.Registry, archive store.DB, gracePeriod time.Duration, log *logging.Logger) *Server {
	return &Server{slot: slot, registry: registry, archive: archive, gracePeriod: gracePeriod, log: log}
}

// Routes builds the chi router: request logging, panic recovery, a
// per-request timeout, and a liveness heartbeat.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/commitment", s.handleGetCommitment)
	r.Post("/game/start", s.handleStartGame)
	r.Post("/game/{id}/finish", s.handleFinishGame)
	r.Get("/game/{id}/status", s.handleGameStatus)
	r.Get("/version", s.handleVersion)

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}

func (s *Server) handleGetCommitment(w http.ResponseWriter, r *http.Request) {
	commitment, mintedAt, untilRotation := s.slot.GetCommitment()
	s.writeJSON(w, http.StatusOK, CommitmentResponse{
		Commitment:  commitment,
		TimestampMs: mintedAt.UnixMilli(),
		ExpiresInMs: untilRotation.Milliseconds(),
	})
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	result, err := protocol.StartGame(s.slot, s.registry, req.ClientSeed, req.NumBalls, req.RecordedCommitment)
	if err != nil {
		s.log.Warn("game_start_rejected", "error", err.Error())
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Info("game_started", "gameId", result.GameID, "numBalls", req.NumBalls)
	s.writeJSON(w, http.StatusOK, StartGameResponse{
		GameID:      result.GameID,
		Commitment:  result.Commitment,
		GameSeedHex: result.GameSeedHex,
	})
}

func (s *Server) handleFinishGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	var req FinishGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	result, err := protocol.FinishGame(s.registry, s.gracePeriod, gameID, req.InputLog, req.ClientTotalWin)
	if err != nil {
		var notFound *protocol.NotFoundError
		if errors.As(err, &notFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	commitment := s.archiveVerdict(gameID)

	if result.Verified {
		s.slot.RevealCommitment(commitment, time.Now())
		s.log.Info("game_finished", "gameId", gameID, "verified", true, "totalWin", result.TotalWin)
		s.writeJSON(w, http.StatusOK, FinishVerifiedResponse{
			Verified: true,
			TotalWin: result.TotalWin,
			Verification: &VerificationEcho{
				ServerSeed:  result.Verification.ServerSeed,
				GameSeedHex: result.Verification.GameSeedHex,
				ClientSeed:  result.Verification.ClientSeed,
				GameID:      result.Verification.GameID,
			},
		})
		return
	}

	s.log.Warn("game_finish_mismatch", "gameId", gameID, "serverTotalWin", result.ServerTotalWin, "clientTotalWin", result.ClientTotalWin)
	s.writeJSON(w, http.StatusOK, FinishMismatchResponse{
		Verified:       false,
		ServerTotalWin: result.ServerTotalWin,
		ClientTotalWin: result.ClientTotalWin,
		Error:          "replay mismatch",
	})
}

// archiveVerdict persists the finished game's verdict if an archive is
// wired, and returns the commitment the game was bound to. The registry
// entry stays the source of truth; archive write errors are logged and
// otherwise ignored.
func (s *Server) archiveVerdict(gameID string) string {
	entry := s.registry.Get(gameID)
	if entry == nil {
		return ""
	}
	entry.Lock()
	rec := store.VerdictRecord{
		GameID:         entry.GameID,
		Commitment:     entry.Commitment,
		ClientSeed:     entry.ClientSeed,
		GameSeedHex:    entry.GameSeedHex,
		NumBalls:       entry.NumBalls,
		Verified:       entry.Verified,
		ServerTotalWin: entry.ServerTotalWin,
		ClientTotalWin: entry.ClientTotalWin,
		FinishedAt:     time.Now(),
	}
	entry.Unlock()

	if s.archive != nil {
		if err := s.archive.SaveVerdict(&rec); err != nil {
			s.log.Error("verdict_archive_failed", "gameId", gameID, "error", err.Error())
		}
	}
	return rec.Commitment
}

func (s *Server) handleGameStatus(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	entry := s.registry.Get(gameID)
	if entry == nil {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}

	entry.Lock()
	resp := GameStatusResponse{
		GameID:    entry.GameID,
		NumBalls:  entry.NumBalls,
		Finished:  entry.Finished,
		Verified:  entry.Verified,
		CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
	}
	entry.Unlock()

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, VersionResponse{EngineVersion: EngineVersion})
}

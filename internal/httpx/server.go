// path: internal/httpx/server.go
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"varchess/internal/game"
	"varchess/internal/store"
)

// Server wires the HTTP layer to the rule engine and the game store. All
// mutations run under one mutex; every accepted move is re-persisted with
// the updated move list, so a restart resumes games exactly.
type Server struct {
	mu    sync.Mutex
	store *store.Store

	srvMu sync.Mutex
	srv   *http.Server
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

func NewServer(st *store.Store) *Server {
	return &Server{store: st}
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Routes configures the ServeMux with the JSON APIs.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/new", s.withJSON(s.handleNew))
	mux.HandleFunc("/api/state", s.withJSON(s.handleState))
	mux.HandleFunc("/api/moves", s.withJSON(s.handleMoves))
	mux.HandleFunc("/api/move", s.withJSON(s.handleMove))
	mux.HandleFunc("/api/undo", s.withJSON(s.handleUndo))
	mux.HandleFunc("/api/games", s.withJSON(s.handleGames))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// statusForError maps the engine and store error taxonomy to HTTP codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidSquare),
		errors.Is(err, game.ErrNoPieceAtSource),
		errors.Is(err, game.ErrWrongSideToMove),
		errors.Is(err, game.ErrIllegalDestination),
		errors.Is(err, game.ErrPromotionRequired),
		errors.Is(err, game.ErrVariantConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// ---- API: new ----

type newBody struct {
	Rules []string `json:"rules"`
	Seed  string   `json:"seed"`
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body newBody
	if !decodeBody(w, r, &body) {
		return
	}

	rules, err := game.ParseRuleSet(body.Rules)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.NewString()
	seed := strings.TrimSpace(body.Seed)
	if seed == "" {
		seed = id
	}

	state, err := game.NewState(rules, seed)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	rec := &store.GameRecord{ID: id, Rules: rules, Seed: seed, State: state}
	s.mu.Lock()
	err = s.store.SaveGame(rec)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"id": id, "state": state})
}

// ---- API: state ----

type stateBody struct {
	ID     string `json:"id"`
	Viewer string `json:"viewer"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body stateBody
	if r.Method == http.MethodGet {
		body.ID = r.URL.Query().Get("id")
		body.Viewer = r.URL.Query().Get("viewer")
	} else if !decodeBody(w, r, &body) {
		return
	}

	rec, err := s.store.LoadGame(body.ID)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	resp := map[string]any{"id": rec.ID, "state": rec.State, "moves": len(rec.Moves)}

	// An explicit viewer gets the fog-of-war visibility mask per board.
	if viewer := strings.TrimSpace(body.Viewer); viewer != "" {
		color, ok := game.ParseColor(viewer)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid viewer color")
			return
		}
		visible := make([][]game.Square, len(rec.State.Boards))
		for i := range rec.State.Boards {
			visible[i] = game.Visible(rec.State, game.BoardID(i), color).Squares()
		}
		resp["visible"] = visible
	}
	writeJSON(w, resp)
}

// ---- API: moves ----

type movesBody struct {
	ID    string `json:"id"`
	Board int    `json:"board"`
	From  string `json:"from"`
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body movesBody
	if !decodeBody(w, r, &body) {
		return
	}

	from, ok := game.CoordToSquare(strings.ToLower(strings.TrimSpace(body.From)))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid from square")
		return
	}

	rec, err := s.store.LoadGame(body.ID)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	board := game.BoardID(body.Board)
	legal, err := game.LegalMoves(rec.State, board, from)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	transfers, err := game.TransferTargets(rec.State, board, from)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, map[string]any{
		"moves":     legal.Squares(),
		"transfers": transfers.Squares(),
	})
}

// ---- API: move ----

type moveBody struct {
	ID        string `json:"id"`
	Board     int    `json:"board"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
	Transfer  bool   `json:"transfer"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body moveBody
	if !decodeBody(w, r, &body) {
		return
	}

	from, ok := game.CoordToSquare(strings.ToLower(strings.TrimSpace(body.From)))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid from square")
		return
	}
	to, ok := game.CoordToSquare(strings.ToLower(strings.TrimSpace(body.To)))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid to square")
		return
	}

	mv := game.Move{Board: game.BoardID(body.Board), From: from, To: to, Transfer: body.Transfer}
	if promotion := strings.TrimSpace(body.Promotion); promotion != "" {
		pt, ok := game.ParsePromotionPiece(promotion)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid promotion choice")
			return
		}
		mv.Promotion = pt
		mv.HasPromotion = true
	}

	s.mu.Lock()
	rec, state, err := s.applyAndSave(body.ID, mv)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, map[string]any{"id": rec.ID, "state": state})
}

func (s *Server) applyAndSave(id string, mv game.Move) (*store.GameRecord, game.State, error) {
	rec, err := s.store.LoadGame(id)
	if err != nil {
		return nil, game.State{}, err
	}
	next, err := game.Apply(rec.State, mv)
	if err != nil {
		return nil, game.State{}, err
	}
	rec.Moves = append(rec.Moves, mv)
	rec.State = next
	if err := s.store.SaveGame(rec); err != nil {
		return nil, game.State{}, err
	}
	return rec, next, nil
}

// ---- API: undo ----

type undoBody struct {
	ID string `json:"id"`
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body undoBody
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	rec, err := s.undoLast(body.ID)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, map[string]any{"id": rec.ID, "state": rec.State, "moves": len(rec.Moves)})
}

// undoLast rewinds one move by replaying the trimmed move list from the
// seed. Seeded randomness (back rank, meteors) reproduces exactly.
func (s *Server) undoLast(id string) (*store.GameRecord, error) {
	rec, err := s.store.LoadGame(id)
	if err != nil {
		return nil, err
	}
	if len(rec.Moves) == 0 {
		return rec, nil
	}
	trimmed := rec.Moves[:len(rec.Moves)-1]
	state, err := game.Replay(rec.Rules, rec.Seed, trimmed)
	if err != nil {
		return nil, err
	}
	rec.Moves = trimmed
	rec.State = state
	if err := s.store.SaveGame(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ---- API: games ----

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ids, err := s.store.ListGames()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, map[string]any{"games": ids})
}

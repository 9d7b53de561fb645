// internal/httpserver/server.go
//
// HTTP server wiring for the Evil Hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/words/lengths", "/rounds/recent".
//   - Round endpoints: POST /round/new, POST /round/guess, GET /round/{id}.
//   - Daily endpoint: POST /daily/new (routes_daily.go).
//   - WebSocket play: GET /round/{id}/ws (ws.go).
//
// Notes:
//   - Guessing requires the round ticket issued at creation (ticket.go).
//   - Finished rounds are archived best effort; archive failures are logged.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/evilhangman/internal/game"
	"github.com/robalobadob/evilhangman/internal/hangman"
	"github.com/robalobadob/evilhangman/internal/store"
)

// Config carries the settings the server needs from the environment.
type Config struct {
	ClientOrigin    string        // CORS + WebSocket origin, e.g. http://localhost:5173
	JWTSecret       []byte        // signs round tickets
	TicketTTL       time.Duration // 0 means 24h
	DailySalt       string
	DefaultMaxWrong int  // used when a request omits maxWrong
	FoldCase        bool // lowercase guesses (dictionary is lowercase)
	Fingerprint     string
	FinishedTTL     time.Duration    // how long finished rounds stay readable; 0 means 5m
	Now             func() time.Time // nil means time.Now
}

// Server bundles router, game store, archive and dictionary.
type Server struct {
	r        *chi.Mux
	cfg      Config
	dict     *hangman.Dictionary
	store    store.Store
	archive  *store.Archive // optional
	validate *validator.Validate
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, dict *hangman.Dictionary, st store.Store, archive *store.Archive) *Server {
	if cfg.TicketTTL == 0 {
		cfg.TicketTTL = 24 * time.Hour
	}
	if cfg.DefaultMaxWrong == 0 {
		cfg.DefaultMaxWrong = 8
	}
	if cfg.FinishedTTL == 0 {
		cfg.FinishedTTL = 5 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		dict:     dict,
		store:    st,
		archive:  archive,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(accessLog)
	s.r.Use(s.cors)

	// WebSocket connections outlive the request timeout.
	s.r.Get("/round/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service":   "evil-hangman",
				"endpoints": []string{"/health", "/words/lengths", "POST /round/new", "POST /round/guess", "GET /round/{id}", "GET /round/{id}/ws", "POST /daily/new", "/rounds/recent"},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/words/lengths", s.handleLengths)

		r.Post("/round/new", s.handleNewRound)
		r.Post("/round/guess", s.handleGuess)
		r.Get("/round/{id}", s.handleGetRound)
		r.Get("/rounds/recent", s.handleRecent)

		s.mountDaily(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (used by main and tests).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves on addr until ctx is cancelled, then drains in-flight
// requests for up to 10 seconds.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// checkOrigin accepts same-origin clients and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.cfg.ClientOrigin || strings.EqualFold(origin, "http://"+r.Host)
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}

// guessError maps a guess failure to a status and error code.
func guessError(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrInvalidLetter):
		return http.StatusBadRequest, "invalid_letter"
	case errors.Is(err, hangman.ErrDuplicateGuess):
		return http.StatusConflict, "duplicate_guess"
	case errors.Is(err, game.ErrFinished):
		return http.StatusConflict, "finished"
	}
	return http.StatusInternalServerError, "internal"
}

// ------------------------------ ROUNDS -------------------------------------

// roundRes is returned when a round is created.
type roundRes struct {
	Round  game.View `json:"round"`
	Ticket string    `json:"ticket"`
}

// newRoundReq is the payload of POST /round/new.
type newRoundReq struct {
	Length     int    `json:"length" validate:"required,min=1"`
	MaxWrong   int    `json:"maxWrong" validate:"omitempty,min=1,max=26"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	req.Difficulty = strings.ToLower(strings.TrimSpace(req.Difficulty))
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	d, err := hangman.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_round_config")
		return
	}
	if req.MaxWrong == 0 {
		req.MaxWrong = s.cfg.DefaultMaxWrong
	}
	s.startRound(w, r, game.Settings{Length: req.Length, MaxWrong: req.MaxWrong, Difficulty: d})
}

// startRound creates, stores and returns a round with a fresh ticket.
func (s *Server) startRound(w http.ResponseWriter, r *http.Request, settings game.Settings) {
	gl := &guessLogger{}
	settings.FoldCase = s.cfg.FoldCase
	settings.Observer = gl.observe

	g, err := game.New(s.dict, settings)
	if errors.Is(err, hangman.ErrInvalidRoundConfig) {
		writeError(w, http.StatusBadRequest, "invalid_round_config")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("new round")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	gl.round = g.ID

	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save round")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	ticket, err := s.signTicket(g.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign ticket")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	v := g.View()
	log.Info().Str("round", g.ID).Int("length", v.Length).Str("difficulty", v.Difficulty).
		Int("liveWords", v.LiveWords).Msg("round started")
	writeJSON(w, http.StatusCreated, roundRes{Round: v, Ticket: ticket})
}

// guessReq is the payload of POST /round/guess.
type guessReq struct {
	RoundID string `json:"roundId" validate:"required"`
	Letter  string `json:"letter" validate:"required"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	if err := s.verifyTicket(bearer(r), req.RoundID); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_ticket")
		return
	}
	g, err := s.store.Get(r.Context(), req.RoundID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	out, err := s.play(r.Context(), g, req.Letter)
	if err != nil {
		status, code := guessError(err)
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// play applies a guess. A round that ends is archived and later evicted
// from the session store.
func (s *Server) play(ctx context.Context, g *game.Game, letter string) (game.Outcome, error) {
	out, err := g.ApplyGuess(letter)
	if err != nil {
		return out, err
	}
	if out.View.State != game.StatePlaying {
		log.Info().Str("round", g.ID).Str("state", string(out.View.State)).
			Int("guesses", out.View.Guesses).Msg("round finished")
		s.archiveRound(ctx, out.View)
		s.evictLater(g.ID)
	}
	return out, nil
}

// evictLater drops a finished round from the session store after
// cfg.FinishedTTL, leaving the archive as its only record.
func (s *Server) evictLater(id string) {
	time.AfterFunc(s.cfg.FinishedTTL, func() {
		if err := s.store.Delete(context.Background(), id); err != nil {
			log.Warn().Err(err).Str("round", id).Msg("evict round")
			return
		}
		log.Debug().Str("round", id).Msg("round evicted")
	})
}

func (s *Server) archiveRound(ctx context.Context, v game.View) {
	if s.archive == nil {
		return
	}
	res := store.Result{
		ID:         v.ID,
		Length:     v.Length,
		Difficulty: v.Difficulty,
		MaxWrong:   v.MaxWrong,
		Guesses:    v.Guesses,
		Wrong:      v.MaxWrong - v.Remaining,
		Status:     string(v.State),
		Secret:     v.Secret,
		Dictionary: s.cfg.Fingerprint,
		DailyDate:  v.DailyDate,
		StartedAt:  v.StartedAt,
		FinishedAt: s.cfg.Now().UTC(),
	}
	if v.FinishedAt != nil {
		res.FinishedAt = *v.FinishedAt
	}
	if err := s.archive.Record(ctx, res); err != nil {
		log.Warn().Err(err).Str("round", v.ID).Msg("archive round")
	}
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

func (s *Server) handleLengths(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]int)
	for _, l := range s.dict.Lengths() {
		out[strconv.Itoa(l)] = s.dict.CountByLength(l)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeJSON(w, http.StatusOK, []store.Result{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}
	rows, err := s.archive.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("recent rounds")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// guessLogger is the engine observer installed on every round.
type guessLogger struct {
	round string
}

func (l *guessLogger) observe(rep hangman.Report) {
	log.Debug().
		Str("round", l.round).
		Str("letter", string(rep.Letter)).
		Int("guess", rep.Number).
		Str("difficulty", rep.Difficulty.String()).
		Str("pick", rep.Pick.String()).
		Str("pattern", rep.Pattern).
		Int("live", rep.LiveWords).
		Int("families", rep.Families).
		Bool("wrong", rep.Wrong).
		Msg("guess")
}

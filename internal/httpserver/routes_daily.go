// internal/httpserver/routes_daily.go
//
// HTTP route for the daily round:
//   - POST /daily/new → start today's round (UTC date).
//
// The word length and the secret-resolution randomness derive from the
// date and DAILY_SALT, so identical play on the same day ends identically.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/evilhangman/internal/daily"
	"github.com/robalobadob/evilhangman/internal/game"
)

// dailyReq is the optional payload of POST /daily/new.
type dailyReq struct {
	MaxWrong int `json:"maxWrong" validate:"omitempty,min=1,max=26"`
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req dailyReq
	if r.ContentLength != 0 {
		if err := s.decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request")
			return
		}
	}
	if req.MaxWrong == 0 {
		req.MaxWrong = s.cfg.DefaultMaxWrong
	}

	plan := daily.PlanFor(s.cfg.Now(), s.cfg.DailySalt, s.dict)
	s.startRound(w, r, game.Settings{
		Length:     plan.Length,
		MaxWrong:   req.MaxWrong,
		Difficulty: plan.Difficulty,
		DailyDate:  plan.Date,
		Rand:       plan.Rand,
	})
}

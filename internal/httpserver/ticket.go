// internal/httpserver/ticket.go
//
// Round tickets: an HS256 JWT carrying the round id ("rid"), issued when a
// round is created. Guesses must present the ticket of their round, either
// as "Authorization: Bearer <ticket>" or, for WebSockets, ?ticket=<ticket>.

package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidTicket = errors.New("invalid ticket")

type ticketClaims struct {
	RoundID string `json:"rid"`
	jwt.RegisteredClaims
}

// signTicket issues a ticket for round id, valid for cfg.TicketTTL.
func (s *Server) signTicket(id string) (string, error) {
	now := s.cfg.Now()
	claims := ticketClaims{
		RoundID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TicketTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.JWTSecret)
}

// verifyTicket checks signature, expiry and that the ticket names roundID.
func (s *Server) verifyTicket(raw, roundID string) error {
	if raw == "" {
		return errInvalidTicket
	}
	var claims ticketClaims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (interface{}, error) { return s.cfg.JWTSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.cfg.Now),
	)
	if err != nil || !token.Valid || claims.RoundID != roundID {
		return errInvalidTicket
	}
	return nil
}

// bearer extracts a token from the Authorization header.
func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

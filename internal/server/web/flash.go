package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/userbook/internal/server/auth"
)

const (
	flashCookieName = "flash"
	flashTTL        = time.Minute
)

// setFlash stores a notice for the page rendered after the redirect.
func (s *Server) setFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	tok, err := auth.GenerateFlashToken(auth.Flash{Kind: kind, Message: message}, s.secret, flashTTL)
	if err != nil {
		s.logger.Error(r.Context(), "flash token error", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending notice, if any, and clears it. Forged or
// expired notices are dropped silently.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) *auth.Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", MaxAge: -1})

	f, err := auth.ParseFlashToken(c.Value, s.secret)
	if err != nil {
		return nil
	}
	return f
}

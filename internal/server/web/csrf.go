package web

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/userbook/internal/server/auth"
	"github.com/google/uuid"
)

const (
	csrfCookieName = "csrf_nonce"
	csrfFormField  = "csrf_token"
)

type ctxKey string

const csrfNonceKey ctxKey = "csrfNonce"

// csrfProtect implements double-submit protection: every browser gets a
// random nonce cookie, forms embed a signed token for that nonce, and a POST
// is accepted only when the two agree and the token has not expired.
func (s *Server) csrfProtect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var nonce string
		if c, err := r.Cookie(csrfCookieName); err == nil {
			nonce = c.Value
		}

		if r.Method == http.MethodPost {
			if err := auth.VerifyCSRFToken(r.PostFormValue(csrfFormField), nonce, s.secret); err != nil {
				s.logger.Warn(r.Context(), "csrf check failed", "path", r.URL.Path, "error", err)
				s.renderError(w, r, http.StatusForbidden, "The form has expired or is invalid. Please reload the page and try again.")
				return
			}
		}

		if nonce == "" {
			nonce = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    nonce,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), csrfNonceKey, nonce)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// csrfToken mints a form token for the request's nonce.
func (s *Server) csrfToken(r *http.Request) string {
	nonce, _ := r.Context().Value(csrfNonceKey).(string)
	tok, err := auth.GenerateCSRFToken(nonce, s.secret, s.csrfTTL)
	if err != nil {
		s.logger.Error(r.Context(), "csrf token error", "error", err)
		return ""
	}
	return tok
}

package auth

import (
	"net/http"

	"github.com/saulo-duarte/mindpop-lambda/internal/config"
)

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_ = h.auth.Logout(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
)

type Handler struct {
	auth         Authenticator
	cookieDomain string
}

func NewHandler(a Authenticator, cookieDomain string) *Handler {
	return &Handler{auth: a, cookieDomain: cookieDomain}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var in SignupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.WithError(err).Warn("Corpo da requisição inválido para cadastro")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := h.auth.Signup(r.Context(), in)
	if err != nil {
		log.WithError(err).Warn("Falha no cadastro")
		config.Fail(w, err)
		return
	}
	h.setSessionCookie(w, sess)
	config.JSON(w, http.StatusCreated, sess)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Corpo da requisição inválido para login")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		config.Fail(w, err)
		return
	}
	h.setSessionCookie(w, sess)
	config.JSON(w, http.StatusOK, sess)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.CurrentUser(r.Context())
	if err != nil {
		config.Fail(w, err)
		return
	}
	if u == nil {
		config.Fail(w, apperr.ErrUnauthorized)
		return
	}
	config.JSON(w, http.StatusOK, u)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sess.AccessToken,
		Path:     "/",
		Domain:   h.cookieDomain,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

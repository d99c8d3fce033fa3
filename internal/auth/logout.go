package auth

import (
	"net/http"

	"github.com/saulo-duarte/socrates-lambda/internal/config"
)

type Handler struct {
	cookieDomain string
}

func NewHandler(cookieDomain string) *Handler {
	return &Handler{cookieDomain: cookieDomain}
}

// Logout expires the session cookie. Bearer tokens are stateless and simply dropped by the client.
//
// @Summary  Log out
// @Tags     auth
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
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

package user

import (
	"net/http"

	"github.com/saulo-duarte/socrates-lambda/internal/auth"
	"github.com/saulo-duarte/socrates-lambda/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type Me struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// GetUser returns the identity carried by the caller's token.
//
// @Summary   Current user
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  Me
// @Failure   401  {object}  map[string]string
// @Router    /users/me [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	config.JSON(w, http.StatusOK, Me{UserID: claims.UserID, Role: claims.Role})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserHandler serves the routes behind the Auth middleware.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type messageResponse struct {
	Message string `json:"message"`
}

// Profile returns the identity claim carried by the caller's token.
//
// @Summary      Current identity
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.IdentityClaim
// @Failure      401  {object}  map[string]string
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claim)
}

// Admin is reachable only with the ADMIN role.
//
// @Summary      Admin-only data
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users/admin [get]
func (h *UserHandler) Admin(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "This is admin data"})
}

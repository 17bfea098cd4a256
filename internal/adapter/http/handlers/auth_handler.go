package handlers

import (
	"errors"
	"net/http"

	request "presupuestos_service/internal/adapter/http/dto/request"
	response "presupuestos_service/internal/adapter/http/dto/response"
	"presupuestos_service/internal/adapter/http/middleware"
	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase"
	"presupuestos_service/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errWrongCredentials = pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Email o contraseña incorrectos.", http.StatusUnauthorized)
	errBadEmail         = pkg.NewDomainErrorSimple("INVALID_EMAIL", "Formato de email inválido.", http.StatusBadRequest)
	errNoSession        = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Sesión no iniciada", http.StatusUnauthorized)
)

type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

// Login godoc
// @Summary  Sign in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      request.LoginRequest  true  "Credentials"
// @Success  200   {object}  response.LoginResponse
// @Failure  400   {object}  pkg.HTTPError
// @Failure  401   {object}  pkg.HTTPError
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	res, err := h.usecase.SignIn(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.LoginResponse{
		Token:     res.Session.Token,
		ExpiresAt: res.Session.ExpiresAt,
		Profile:   response.FromProfile(res.Profile),
	})
}

// Logout godoc
// @Summary   Sign out the current session
// @Tags      auth
// @Security  BearerAuth
// @Success   204
// @Failure   401  {object}  pkg.HTTPError
// @Router    /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		writeError(c, errNoSession)
		return
	}
	if err := h.usecase.SignOut(c.Request.Context(), s); err != nil {
		writeError(c, pkg.NewDomainError("LOGOUT_FAILED", "Error al cerrar sesión. Intenta de nuevo.", err, http.StatusInternalServerError))
		return
	}
	c.Status(http.StatusNoContent)
}

// Session godoc
// @Summary   Current session and profile
// @Tags      auth
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  response.SessionResponse
// @Failure   401  {object}  pkg.HTTPError
// @Router    /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	s, ok := middleware.SessionFrom(c)
	p := middleware.ProfileFrom(c)
	if !ok || p == nil {
		writeError(c, errNoSession)
		return
	}
	c.JSON(http.StatusOK, response.SessionResponse{
		SessionID: s.ID,
		ExpiresAt: s.ExpiresAt,
		Profile:   response.FromProfile(*p),
	})
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, entities.ErrInvalidCredentials):
		return errWrongCredentials
	case errors.Is(err, entities.ErrInvalidEmail):
		return errBadEmail
	default:
		return pkg.NewDomainError("LOGIN_FAILED", "Error al iniciar sesión. Intenta de nuevo.", err, http.StatusInternalServerError)
	}
}

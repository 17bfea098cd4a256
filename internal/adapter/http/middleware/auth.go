package middleware

import (
	"errors"
	"net/http"
	"strings"

	"presupuestos_service/internal/adapter/http/dto/response"
	"presupuestos_service/internal/domain/access"
	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase"
	"presupuestos_service/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionKey = "session"
	ProfileKey = "profile"
)

var errProfileUnavailable = pkg.NewDomainErrorSimple("PROFILE_UNAVAILABLE", "Error al cargar datos del usuario. Intenta de nuevo.", http.StatusServiceUnavailable)

// Authenticate resolves a Bearer token into a session and profile when one is
// sent. Requests without a valid token continue unauthenticated; the view
// guards decide what that means.
func Authenticate(auth usecase.IAuthUseCase, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		res, err := auth.Authenticate(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		switch {
		case err == nil:
			c.Set(SessionKey, res.Session)
			c.Set(ProfileKey, res.Profile)
		case errors.Is(err, entities.ErrSessionInvalid):
			// treated as signed out
		default:
			logger.Error("resolve session profile",
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(errProfileUnavailable.HTTPStatus, errProfileUnavailable.ToHTTPError())
			return
		}
		c.Next()
	}
}

// RequireView runs the access guard for view. Unauthenticated requests get
// 401 with a redirect to the login view; authenticated requests without the
// required role are redirected to the dashboard with 303 See Other.
func RequireView(view access.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		nav := access.NewNavigation(view)
		d := nav.Resolve(ProfileFrom(c))

		switch d.State {
		case access.StateUnauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.FromDecision(view, d))
		case access.StateNoRoleMatch:
			c.Header("Location", d.RedirectTo)
			c.AbortWithStatusJSON(http.StatusSeeOther, response.FromDecision(view, d))
		default:
			c.Next()
		}
	}
}

// ProfileFrom returns the authenticated profile, or nil.
func ProfileFrom(c *gin.Context) *entities.Profile {
	v, ok := c.Get(ProfileKey)
	if !ok {
		return nil
	}
	p, ok := v.(entities.Profile)
	if !ok {
		return nil
	}
	return &p
}

func SessionFrom(c *gin.Context) (entities.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return entities.Session{}, false
	}
	s, ok := v.(entities.Session)
	return s, ok
}

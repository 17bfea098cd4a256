package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"presupuestos_service/internal/adapter/http/handlers/mocks"
	"presupuestos_service/internal/adapter/http/middleware"
	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

// withIdentity stands in for the Authenticate middleware.
func withIdentity(s *entities.Session, p *entities.Profile) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s != nil {
			c.Set(middleware.SessionKey, *s)
		}
		if p != nil {
			c.Set(middleware.ProfileKey, *p)
		}
		c.Next()
	}
}

func newAuthRouter(uc usecase.IAuthUseCase, s *entities.Session, p *entities.Profile) *gin.Engine {
	h := NewAuthHandler(uc)
	r := gin.New()
	r.Use(withIdentity(s, p))
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/logout", h.Logout)
	r.GET("/v1/auth/session", h.Session)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"wrong credentials", entities.ErrInvalidCredentials, http.StatusUnauthorized, "Email o contraseña incorrectos."},
		{"bad email", entities.ErrInvalidEmail, http.StatusBadRequest, "Formato de email inválido."},
		{"provider failure", errors.New("redis down"), http.StatusInternalServerError, "Error al iniciar sesión. Intenta de nuevo."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIAuthUseCase(ctrl)
			r := newAuthRouter(uc, nil, nil)
			uc.EXPECT().SignIn(gomock.Any(), "ana@example.com", "x").Return(usecase.AuthResult{}, tc.err)

			w := doJSON(r, http.MethodPost, "/v1/auth/login", `{"email":"ana@example.com","password":"x"}`)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
			var body struct {
				Message string `json:"message"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body.Message)
			}
		})
	}

	t.Run("missing password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := newAuthRouter(mocks.NewMockIAuthUseCase(ctrl), nil, nil)

		w := doJSON(r, http.MethodPost, "/v1/auth/login", `{"email":"ana@example.com"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newAuthRouter(uc, nil, nil)
		uc.EXPECT().SignIn(gomock.Any(), "ana@example.com", "s3cret").Return(usecase.AuthResult{
			Session: entities.Session{ID: "s-1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)},
			Profile: entities.Profile{UID: "uid-1", Name: "Ana", Role: entities.RoleAdministrator},
		}, nil)

		w := doJSON(r, http.MethodPost, "/v1/auth/login", `{"email":"ana@example.com","password":"s3cret"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Token   string `json:"token"`
			Profile struct {
				Role string `json:"role"`
			} `json:"profile"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Token != "tok" || body.Profile.Role != "administrator" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("without session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := newAuthRouter(mocks.NewMockIAuthUseCase(ctrl), nil, nil)

		w := doJSON(r, http.MethodPost, "/v1/auth/logout", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("signs out the current session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		s := entities.Session{ID: "s-1"}
		r := newAuthRouter(uc, &s, &entities.Profile{UID: "uid-1"})
		uc.EXPECT().SignOut(gomock.Any(), s).Return(nil)

		w := doJSON(r, http.MethodPost, "/v1/auth/logout", "")
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("sign out failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		s := entities.Session{ID: "s-1"}
		r := newAuthRouter(uc, &s, &entities.Profile{UID: "uid-1"})
		uc.EXPECT().SignOut(gomock.Any(), s).Return(errors.New("redis down"))

		w := doJSON(r, http.MethodPost, "/v1/auth/logout", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestAuthHandler_Session(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	anon := newAuthRouter(mocks.NewMockIAuthUseCase(ctrl), nil, nil)
	if w := doJSON(anon, http.MethodGet, "/v1/auth/session", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	signed := newAuthRouter(mocks.NewMockIAuthUseCase(ctrl), &entities.Session{ID: "s-1"}, &entities.Profile{UID: "uid-1", Name: "Ana"})
	w := doJSON(signed, http.MethodGet, "/v1/auth/session", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		SessionID string `json:"session_id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.SessionID != "s-1" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

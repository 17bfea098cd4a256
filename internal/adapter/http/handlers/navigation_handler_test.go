package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"presupuestos_service/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

func TestNavigation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	seller := &entities.Profile{UID: "u-1", Name: "Vera", Role: entities.RoleSeller}
	admin := &entities.Profile{UID: "u-2", Name: "Ana", Role: entities.RoleAdministrator}

	cases := []struct {
		name     string
		profile  *entities.Profile
		view     string
		code     int
		state    string
		allow    bool
		redirect string
	}{
		{"login is always open", nil, "login", http.StatusOK, "authenticated-authorized", true, ""},
		{"anonymous on dashboard", nil, "dashboard", http.StatusOK, "unauthenticated", false, "/login"},
		{"seller on quotes", seller, "quotes", http.StatusOK, "authenticated-authorized", true, ""},
		{"seller on admin", seller, "admin", http.StatusOK, "authenticated-no-role-match", false, "/"},
		{"admin on admin", admin, "admin", http.StatusOK, "authenticated-authorized", true, ""},
		{"unknown view", admin, "reports", http.StatusNotFound, "", false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(withIdentity(nil, tc.profile))
			r.GET("/v1/navigation/:view", Navigation)

			w := doJSON(r, http.MethodGet, "/v1/navigation/"+tc.view, "")
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
			if tc.code != http.StatusOK {
				return
			}
			var body struct {
				State      string `json:"state"`
				Allow      bool   `json:"allow"`
				RedirectTo string `json:"redirect_to"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.State != tc.state || body.Allow != tc.allow || body.RedirectTo != tc.redirect {
				t.Fatalf("unexpected decision: %s", w.Body.String())
			}
		})
	}
}

package response

import "presupuestos_service/internal/domain/access"

type NavigationResponse struct {
	View       string `json:"view"`
	Path       string `json:"path"`
	State      string `json:"state"`
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

func FromDecision(v access.View, d access.Decision) NavigationResponse {
	return NavigationResponse{
		View:       v.Name,
		Path:       v.Path,
		State:      string(d.State),
		Allow:      d.Allow,
		RedirectTo: d.RedirectTo,
	}
}

// AdminPanelResponse is the landing data of the administrator view.
type AdminPanelResponse struct {
	Greeting string          `json:"greeting"`
	Profile  ProfileResponse `json:"profile"`
	Stats    StatsResponse   `json:"stats"`
}

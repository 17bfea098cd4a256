// Package access decides whether a profile may open a view.
//
// A navigation attempt starts in StateLoading while the session is being
// resolved and ends in exactly one of the three terminal states.
package access

import (
	"sync"

	"presupuestos_service/internal/domain/entities"
)

type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateNoRoleMatch     State = "authenticated-no-role-match"
	StateAuthorized      State = "authenticated-authorized"
)

const (
	PathLogin     = "/login"
	PathDashboard = "/"
)

// Decision is the outcome of a navigation attempt.
type Decision struct {
	State      State  `json:"state"`
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// Authorize is the guard itself. A nil profile means no identity. An empty
// required role admits any authenticated profile.
func Authorize(profile *entities.Profile, required entities.Role) Decision {
	if profile == nil {
		return Decision{State: StateUnauthenticated, RedirectTo: PathLogin}
	}
	if required != "" && profile.Role != required {
		return Decision{State: StateNoRoleMatch, RedirectTo: PathDashboard}
	}
	return Decision{State: StateAuthorized, Allow: true}
}

// Navigation tracks one attempt to open a view.
type Navigation struct {
	view View

	mu       sync.Mutex
	state    State
	decision Decision
}

func NewNavigation(view View) *Navigation {
	return &Navigation{view: view, state: StateLoading}
}

func (n *Navigation) View() View {
	return n.view
}

func (n *Navigation) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Resolve moves the attempt out of loading. Only the first call decides;
// later calls return the same decision.
func (n *Navigation) Resolve(profile *entities.Profile) Decision {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != StateLoading {
		return n.decision
	}
	n.decision = Authorize(profile, n.view.RequiredRole)
	n.state = n.decision.State
	return n.decision
}

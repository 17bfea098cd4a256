package access

import "presupuestos_service/internal/domain/entities"

// View is a route of the front-end router.
type View struct {
	Name         string        `json:"name"`
	Path         string        `json:"path"`
	RequiredRole entities.Role `json:"required_role,omitempty"`
}

var (
	ViewLogin     = View{Name: "login", Path: PathLogin}
	ViewDashboard = View{Name: "dashboard", Path: PathDashboard}
	ViewQuoteList = View{Name: "quotes", Path: "/presupuestos"}
	ViewNewQuote  = View{Name: "new-quote", Path: "/nuevo-presupuesto"}
	ViewAdmin     = View{Name: "admin", Path: "/admin", RequiredRole: entities.RoleAdministrator}
)

var viewsByName = map[string]View{
	ViewLogin.Name:     ViewLogin,
	ViewDashboard.Name: ViewDashboard,
	ViewQuoteList.Name: ViewQuoteList,
	ViewNewQuote.Name:  ViewNewQuote,
	ViewAdmin.Name:     ViewAdmin,
}

func LookupView(name string) (View, bool) {
	v, ok := viewsByName[name]
	return v, ok
}

// Package routes defines the navigation contract between the core and the UI.
package routes

// Route names one UI destination. The set is closed; use cases never produce
// a path outside this enumeration.
type Route string

const (
	Login          Route = "login"
	RefreshSession Route = "refresh-session"
	SetConfig      Route = "set-config"
	Dashboard      Route = "dashboard"
	Shops          Route = "shops"
	CreateShop     Route = "create-shop"
	CreatePromo    Route = "create-promo"
	Scan           Route = "scan"
	Redeem         Route = "redeem"
	Cashiers       Route = "cashiers"
	Statistics     Route = "statistics"
	UpgradePlan    Route = "upgrade-plan"
	Error          Route = "error"
)

// Params carries optional redirection context. Error is set exactly when the
// redirection resulted from a failure; Origin names the route the failure came
// from so the UI can offer a way back.
type Params struct {
	Error  string `json:"error,omitempty"`
	Origin string `json:"origin,omitempty"`
}

// Redirection is the uniform output of every use case: where the UI should
// navigate next, plus optional error context.
type Redirection struct {
	Path   Route   `json:"path"`
	Params *Params `json:"params,omitempty"`
}

// To creates a plain success redirection.
func To(path Route) Redirection {
	return Redirection{Path: path}
}

// WithError creates a failure redirection carrying a message.
func WithError(path Route, message string) Redirection {
	return Redirection{Path: path, Params: &Params{Error: message}}
}

// WithErrorOrigin creates a failure redirection that also records the
// originating route.
func WithErrorOrigin(path Route, message string, origin Route) Redirection {
	return Redirection{Path: path, Params: &Params{Error: message, Origin: string(origin)}}
}

// Package guard gates access to the client's protected views. It is a pure
// function of the current session state, evaluated at every navigation; token
// validity against the server is never checked here — an invalid token
// surfaces as a 401 on the first real call and is handled by the transport.
package guard

import "github.com/santi-esquerre/departamento-del-agua-api/internal/models"

// Route names mirrored from the admin UI.
const (
	RouteLogin         = "/login"
	RouteIdentidad     = "/identidad"
	RouteNotFound      = "/404"
	RouteDashboard     = "/"
	RouteStudents      = "/student"
	RouteStudentDetail = "/student/details"
	RouteForm          = "/form"
)

// Session is the read-only session surface the guard consumes.
type Session interface {
	Token() string
	Personal() *models.Personal
}

// Decision is the outcome of evaluating a navigation attempt.
type Decision struct {
	// Allow reports that the requested view may render.
	Allow bool
	// RedirectTo is the route to navigate to instead when Allow is false.
	RedirectTo string
	// From carries the originally attempted route on a login redirect, so
	// the login flow can return there afterwards.
	From string
}

var protected = map[string]bool{
	RouteDashboard:     true,
	RouteStudents:      true,
	RouteStudentDetail: true,
	RouteForm:          true,
}

var public = map[string]bool{
	RouteLogin:     true,
	RouteIdentidad: true,
	RouteNotFound:  true,
}

// Resolve canonicalizes a requested route: the legacy /dashboard alias maps
// to the root and anything unknown lands on /404.
func Resolve(route string) string {
	if route == "/dashboard" {
		return RouteDashboard
	}
	if protected[route] || public[route] {
		return route
	}
	return RouteNotFound
}

// Evaluate decides whether the session may enter the given route.
// The token check strictly precedes the identity check: without a token the
// user always goes to login, never to the identity chooser.
func Evaluate(s Session, route string) Decision {
	route = Resolve(route)
	if !protected[route] {
		return Decision{Allow: true}
	}
	if s.Token() == "" {
		return Decision{RedirectTo: RouteLogin, From: route}
	}
	if s.Personal() == nil {
		return Decision{RedirectTo: RouteIdentidad}
	}
	return Decision{Allow: true}
}

// ABOUTME: Client-side routes of the candidate portal and the auth guard
// ABOUTME: Career routes carry the path-escaped company name

package routes

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Route is a client-side path such as "/login" or "/career/Acme%20Corp"
type Route string

const (
	Home    Route = "/"
	Login   Route = "/login"
	Signup  Route = "/signup"
	Profile Route = "/profile"
	Formula Route = "/formula"

	careerPrefix = "/career/"
)

// ErrUnknownRoute is returned by Parse for paths the portal does not serve
var ErrUnknownRoute = errors.New("unknown route")

// CareerPath builds the career route for a company
func CareerPath(companyName string) Route {
	return Route(careerPrefix + url.PathEscape(companyName))
}

// IsCareer reports whether r is a career page
func (r Route) IsCareer() bool {
	return strings.HasPrefix(string(r), careerPrefix) && len(r) > len(careerPrefix)
}

// Company returns the decoded company name of a career route
func (r Route) Company() (string, bool) {
	if !r.IsCareer() {
		return "", false
	}
	name, err := url.PathUnescape(strings.TrimPrefix(string(r), careerPrefix))
	if err != nil {
		return "", false
	}
	return name, true
}

func (r Route) String() string { return string(r) }

// Parse normalizes a user-supplied path into a known route
func Parse(path string) (Route, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Home, nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	r := Route(path)
	switch r {
	case Home, Login, Signup, Profile, Formula:
		return r, nil
	}
	if r.IsCareer() {
		if _, ok := r.Company(); !ok {
			return "", fmt.Errorf("%w: bad company name in %q", ErrUnknownRoute, path)
		}
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}

// RequiresAuth reports whether r is only shown to logged-in candidates
func RequiresAuth(r Route) bool {
	return r != Login && r != Signup
}

// Guard decides whether the route on screen must change once the session has
// settled. It never redirects to the route already shown.
func Guard(current Route, authenticated bool) (Route, bool) {
	var target Route
	switch {
	case !authenticated && RequiresAuth(current):
		target = Login
	case authenticated && current == Login:
		target = Home
	default:
		return current, false
	}
	if target == current {
		return current, false
	}
	return target, true
}

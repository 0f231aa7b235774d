// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

// Route is a client-side location the user is sent to after a mutation.
type Route string

const (
	// RouteHome is the authenticated landing route.
	RouteHome Route = "/"
	// RouteLogin is the login entry point.
	RouteLogin Route = "/login"
)

// Navigator receives the route to show after login, registration, logout
// and an unrecoverable refresh failure.
type Navigator interface {
	Navigate(route Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route Route)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route Route) { f(route) }

type discardNavigator struct{}

func (discardNavigator) Navigate(Route) {}

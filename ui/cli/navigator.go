// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"

	"github.com/taskflow-dev/taskflow/client"
	"github.com/taskflow-dev/taskflow/internal/i18n"
)

// cliNavigator turns route changes into a hint line, since a terminal has
// no pages to switch to.
type cliNavigator struct {
	out io.Writer
}

func (n *cliNavigator) Navigate(route client.Route) {
	switch route {
	case client.RouteHome:
		fmt.Fprintln(n.out, i18n.T("route.home"))
	case client.RouteLogin:
		fmt.Fprintln(n.out, i18n.T("route.login"))
	}
}

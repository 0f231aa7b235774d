// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taskflow-dev/taskflow/internal/i18n"
)

// isTerminal reports whether stdin is an interactive terminal. Tests swap
// it out.
var isTerminal = func(fd int) bool { return term.IsTerminal(fd) }

// readPassword reads a password without echo. Tests swap it out.
var readPassword = func(fd int) ([]byte, error) { return term.ReadPassword(fd) }

// prompter asks for missing credentials on the command's input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	tty := false
	if f, ok := in.(*os.File); ok {
		tty = isTerminal(int(f.Fd()))
	}
	return &prompter{in: bufio.NewReader(in), out: cmd.ErrOrStderr(), tty: tty}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret reads a password: without echo on a terminal, as a plain line
// otherwise.
func (p *prompter) secret(label string) (string, error) {
	if !p.tty {
		return p.line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// credentials fills in e-mail and password from flags or prompts. confirm
// asks for the password twice on a terminal.
func (p *prompter) credentials(email, password string, confirm bool) (string, string, error) {
	var err error
	if strings.TrimSpace(email) == "" {
		if email, err = p.line(i18n.T("login.prompt_email")); err != nil {
			return "", "", err
		}
	}
	if strings.TrimSpace(email) == "" {
		return "", "", errors.New(i18n.T("input.email_required"))
	}
	if password == "" {
		if password, err = p.secret(i18n.T("login.prompt_password")); err != nil {
			return "", "", err
		}
		if confirm && p.tty {
			again, err := p.secret(i18n.T("login.prompt_password"))
			if err != nil {
				return "", "", err
			}
			if again != password {
				return "", "", errors.New(i18n.T("input.password_mismatch"))
			}
		}
	}
	return email, password, nil
}

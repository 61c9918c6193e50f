package prompt

import (
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"golang.org/x/term"

	errs "github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/errors"
)

// Prompter asks the user for a single line of input.
type Prompter interface {
	Prompt(title, placeholder string) (string, error)
}

// HuhPrompter prompts through a huh input form.
type HuhPrompter struct{}

var _ Prompter = (*HuhPrompter)(nil)

func (HuhPrompter) Prompt(title, placeholder string) (string, error) {
	var value string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("value must not be empty")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// IsTerminal reports whether stdin is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Resolver returns supplied values as-is and asks for the missing ones.
type Resolver struct {
	Prompter    Prompter
	Interactive bool
}

// NewResolver builds a Resolver prompting on stdin when it is a terminal.
func NewResolver() *Resolver {
	return &Resolver{
		Prompter:    HuhPrompter{},
		Interactive: IsTerminal(),
	}
}

// Resolve returns value if not empty. Otherwise it prompts until a
// non-empty line is entered, or fails with ErrNotInteractive when there
// is no terminal to prompt on.
func (r *Resolver) Resolve(value, title, placeholder string) (string, error) {
	if value != "" {
		return value, nil
	}
	if !r.Interactive || r.Prompter == nil {
		return "", &errs.ErrNotInteractive{Value: title}
	}
	for {
		v, err := r.Prompter.Prompt(title, placeholder)
		if err != nil {
			return "", errors.Wrapf(err, "prompting for %s", title)
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
	}
}

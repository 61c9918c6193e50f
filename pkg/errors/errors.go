package errors

import "fmt"

// ErrInternal is returned when something unexpected happened on the
// host side (filesystem, randomness source, ...).
type ErrInternal struct {
	Sub error
}

var _ error = (*ErrInternal)(nil)

func (err ErrInternal) Error() string {
	return fmt.Sprintf("internal error: %s", err.Sub)
}

func (err ErrInternal) Unwrap() error {
	return err.Sub
}

// ErrPlaybook is returned when an Ansible playbook run did not succeed.
type ErrPlaybook struct {
	Playbook string
	Sub      error
}

var _ error = (*ErrPlaybook)(nil)

func (err ErrPlaybook) Error() string {
	return fmt.Sprintf("ansible playbook %s failed: %s", err.Playbook, err.Sub)
}

func (err ErrPlaybook) Unwrap() error {
	return err.Sub
}

// ErrNotImplemented is returned for requests that are accepted on the
// command line but never performed.
type ErrNotImplemented struct {
	Feature string
}

var _ error = (*ErrNotImplemented)(nil)

func (err ErrNotImplemented) Error() string {
	return fmt.Sprintf("%s is currently not implemented", err.Feature)
}

// ErrNotInteractive is returned when a value is missing and there is no
// terminal to ask for it.
type ErrNotInteractive struct {
	Value string
}

var _ error = (*ErrNotInteractive)(nil)

func (err ErrNotInteractive) Error() string {
	return fmt.Sprintf("no value provided for %q and stdin is not a terminal", err.Value)
}

// ErrUnsupportedProvider is returned when the configured DNS provider
// has no implementation.
type ErrUnsupportedProvider struct {
	Provider string
}

var _ error = (*ErrUnsupportedProvider)(nil)

func (err ErrUnsupportedProvider) Error() string {
	return fmt.Sprintf("unsupported DNS provider: %s", err.Provider)
}

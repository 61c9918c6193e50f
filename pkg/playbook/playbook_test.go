package playbook_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/errors"
	"github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/playbook"
)

// recorder is an Executor recording calls and failing on demand.
type recorder struct {
	fail  map[string]error
	calls []string
}

func (r *recorder) Run(_ context.Context, pb string) error {
	r.calls = append(r.calls, pb)
	return r.fail[pb]
}

func TestRunner(t *testing.T) {
	t.Parallel()

	errCtf := errors.New("setup-ctf exploded")
	errChalls := errors.New("setup-challs exploded")

	var tests = map[string]struct {
		Fail          map[string]error
		ExpectedCalls []string
		ExpectedErr   error
	}{
		"all-succeed": {
			ExpectedCalls: []string{"setup-ctf", "setup-challs"},
		},
		"first-fails": {
			Fail:          map[string]error{"setup-ctf": errCtf},
			ExpectedCalls: []string{"setup-ctf"},
			ExpectedErr:   errCtf,
		},
		"second-fails": {
			Fail:          map[string]error{"setup-challs": errChalls},
			ExpectedCalls: []string{"setup-ctf", "setup-challs"},
			ExpectedErr:   errChalls,
		},
	}

	for testname, tt := range tests {
		t.Run(testname, func(t *testing.T) {
			assert := assert.New(t)

			rec := &recorder{fail: tt.Fail}
			r := &playbook.Runner{Executor: rec}

			err := r.Run(context.Background(), playbook.Playbooks...)

			assert.Equal(tt.ExpectedCalls, rec.calls)
			if tt.ExpectedErr != nil {
				assert.ErrorIs(err, tt.ExpectedErr)
			} else {
				assert.NoError(err)
			}
		})
	}
}

// fakeAnsible writes a shell script standing for ansible-playbook. It logs
// its arguments then exits with code for playbooks matching failOn.
func fakeAnsible(t *testing.T, failOn string) (bin, log string) {
	t.Helper()

	dir := t.TempDir()
	bin = filepath.Join(dir, "ansible-playbook")
	log = filepath.Join(dir, "calls.log")
	script := `#!/bin/sh
echo "$@" >> ` + log + `
case "$3" in
  *` + failOn + `*) echo "boom" >&2; exit 2 ;;
esac
echo "ok"
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, log
}

func TestAnsibleExecutor(t *testing.T) {
	t.Parallel()

	var tests = map[string]struct {
		FailOn        string
		ExpectedLines []string
		ExpectErr     bool
	}{
		"both-succeed": {
			FailOn: "never-matches",
			ExpectedLines: []string{
				"-i ansible/inventory.ini ansible/setup-ctf.yml",
				"-i ansible/inventory.ini ansible/setup-challs.yml",
			},
		},
		"first-fails": {
			FailOn: "setup-ctf",
			ExpectedLines: []string{
				"-i ansible/inventory.ini ansible/setup-ctf.yml",
			},
			ExpectErr: true,
		},
	}

	for testname, tt := range tests {
		t.Run(testname, func(t *testing.T) {
			assert := assert.New(t)

			bin, log := fakeAnsible(t, tt.FailOn)
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			r := &playbook.Runner{
				Executor: &playbook.AnsibleExecutor{
					Binary:    bin,
					Directory: t.TempDir(),
					Stdout:    stdout,
					Stderr:    stderr,
				},
			}

			err := r.Run(context.Background(), playbook.Playbooks...)

			b, rerr := os.ReadFile(log)
			require.NoError(t, rerr)
			assert.Equal(tt.ExpectedLines, strings.Split(strings.TrimSpace(string(b)), "\n"))

			if tt.ExpectErr {
				var pe *errs.ErrPlaybook
				if assert.ErrorAs(err, &pe) {
					assert.Equal(tt.FailOn, pe.Playbook)
				}
				assert.Contains(stderr.String(), "boom")
				return
			}
			assert.NoError(err)
			assert.Equal("ok\nok\n", stdout.String())
		})
	}
}

func TestAnsibleExecutor_MissingBinary(t *testing.T) {
	t.Parallel()

	ae := &playbook.AnsibleExecutor{
		Binary:    filepath.Join(t.TempDir(), "does-not-exist"),
		Directory: t.TempDir(),
	}
	err := ae.Run(context.Background(), "setup-ctf")

	var pe *errs.ErrPlaybook
	assert.ErrorAs(t, err, &pe)
}

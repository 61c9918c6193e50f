package playbook

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/CTFd-RavenAnticheat/ctf-deploy/global"
	errs "github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/errors"
)

const (
	DefaultBinary    = "ansible-playbook"
	DefaultInventory = "ansible/inventory.ini"
)

// Playbooks that set up the remote nodes, in run order.
var Playbooks = []string{
	"setup-ctf",
	"setup-challs",
}

// Executor runs a single playbook to completion.
type Executor interface {
	Run(ctx context.Context, playbook string) error
}

// AnsibleExecutor runs playbooks through the ansible-playbook binary.
type AnsibleExecutor struct {
	// Binary defaults to DefaultBinary.
	Binary string
	// Inventory is relative to Directory, defaults to DefaultInventory.
	Inventory string
	// Directory holds the ansible/ tree and is the working directory of
	// the process.
	Directory string

	Stdout, Stderr io.Writer
}

var _ Executor = (*AnsibleExecutor)(nil)

func (ae *AnsibleExecutor) Run(ctx context.Context, playbook string) error {
	bin := ae.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	inv := ae.Inventory
	if inv == "" {
		inv = DefaultInventory
	}

	cmd := exec.CommandContext(ctx, bin,
		"-i", inv,
		filepath.Join("ansible", playbook+".yml"),
	)
	cmd.Dir = ae.Directory
	cmd.Stdout = orDefault(ae.Stdout, os.Stdout)
	cmd.Stderr = orDefault(ae.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		return &errs.ErrPlaybook{Playbook: playbook, Sub: err}
	}
	return nil
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// Runner runs playbooks one after the other.
type Runner struct {
	Executor Executor
}

// Run executes the playbooks in order and stops at the first failure.
// Nothing is retried nor rolled back.
func (r *Runner) Run(ctx context.Context, playbooks ...string) error {
	logger := global.Log()
	logger.Info(ctx, "setting up remote nodes")

	for _, pb := range playbooks {
		logger.Info(ctx, "running ansible playbook", zap.String("playbook", pb))
		if err := r.Executor.Run(ctx, pb); err != nil {
			logger.Error(ctx, "ansible playbook failed",
				zap.String("playbook", pb),
				zap.Error(err),
			)
			return err
		}
	}

	logger.Info(ctx, "remote nodes setup successfully")
	return nil
}

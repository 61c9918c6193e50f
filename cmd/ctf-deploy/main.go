package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/CTFd-RavenAnticheat/ctf-deploy/global"
	errs "github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/errors"
	"github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/envfile"
	"github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/playbook"
	"github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/prompt"
)

// Flags that ask for a deployment step. Without any, help is printed.
var deploymentFlags = []string{
	"create-env",
	"cert-email",
	"ctf-domain",
	"challs-domain",
	"chall-repo",
	"provision",
	"setup",
}

// newResolver is swapped in tests to never reach the terminal.
var newResolver = prompt.NewResolver

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "ctf-deploy",
		Usage:   "Deploy CTF environment.",
		Version: global.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "create-env",
				Usage: "Create .env files",
			},
			&cli.StringFlag{
				Name:    "cert-email",
				Usage:   "Email for SSL certificate registration",
			},
			&cli.StringFlag{
				Name:    "ctf-domain",
				Usage:   "Domain for the CTF platform",
			},
			&cli.StringFlag{
				Name:    "challs-domain",
				Usage:   "Domain for the challenges",
			},
			&cli.StringFlag{
				Name:    "chall-repo",
				Usage:   "Git repository URL for challenges",
			},
			&cli.BoolFlag{
				Name:  "provision",
				Usage: "Provision remote nodes (currently not implemented)",
			},
			&cli.BoolFlag{
				Name:  "setup",
				Usage: "Setup remote nodes using Ansible",
			},
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "Repository root holding the ansible/ directory",
				Value:       ".",
				Sources:     cli.EnvVars("CTF_DEPLOY_DIR"),
				Destination: &global.Conf.Directory,
			},
			&cli.StringFlag{
				Name:        "inventory",
				Usage:       "Ansible inventory, relative to --dir",
				Value:       playbook.DefaultInventory,
				Sources:     cli.EnvVars("ANSIBLE_INVENTORY"),
				Destination: &global.Conf.Ansible.Inventory,
			},
			&cli.StringFlag{
				Name:        "ansible-playbook",
				Usage:       "Path to the ansible-playbook binary",
				Value:       playbook.DefaultBinary,
				Destination: &global.Conf.Ansible.Binary,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Use to specify the level of logging",
				Value:       "info",
				Sources:     cli.EnvVars("LOG_LEVEL"),
				Destination: &global.Conf.LogLevel,
			},
		},
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			if _, err := global.ParseLevel(global.Conf.LogLevel); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		Action: run,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newCommand().Run(ctx, os.Args)
	stop()
	if err != nil {
		logger := global.Log()
		logger.Error(ctx, "aborting deployment", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if !anySet(cmd, deploymentFlags...) {
		return cli.ShowAppHelp(cmd)
	}
	defer global.Log().Sync()

	dir := global.Conf.Directory
	if cmd.Bool("create-env") || !envfile.Exist(dir) {
		if err := envfile.Create(ctx, dir, newResolver(), envfile.Deployment{
			CTFDomain:    cmd.String("ctf-domain"),
			ChallsDomain: cmd.String("challs-domain"),
			CertEmail:    cmd.String("cert-email"),
			ChallRepo:    cmd.String("chall-repo"),
		}); err != nil {
			return err
		}
	}

	if cmd.Bool("provision") {
		return &errs.ErrNotImplemented{Feature: "provisioning"}
	}

	if cmd.Bool("setup") {
		r := &playbook.Runner{
			Executor: &playbook.AnsibleExecutor{
				Binary:    global.Conf.Ansible.Binary,
				Inventory: global.Conf.Ansible.Inventory,
				Directory: dir,
				Stdout:    cmd.Root().Writer,
				Stderr:    cmd.Root().ErrWriter,
			},
		}
		return r.Run(ctx, playbook.Playbooks...)
	}
	return nil
}

func anySet(cmd *cli.Command, names ...string) bool {
	for _, name := range names {
		if cmd.IsSet(name) {
			return true
		}
	}
	return false
}

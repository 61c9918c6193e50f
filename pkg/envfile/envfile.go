package envfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/CTFd-RavenAnticheat/ctf-deploy/global"
	errs "github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/errors"
	"github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/prompt"
	"github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/secrets"
)

const (
	// AnsiblePath is the variables file loaded by the playbooks.
	AnsiblePath = "ansible/.env.yml"
	// SetupPath is sourced by the ctfd-setup script.
	SetupPath = "ansible/ctfd/ctfd-setup/.env"

	RegistryUser = "admin"
)

// Deployment holds the user-supplied values of a CTF deployment.
type Deployment struct {
	CTFDomain    string
	ChallsDomain string
	CertEmail    string
	ChallRepo    string
}

// ResolveDeployment fills the missing values of partial through r.
func ResolveDeployment(r *prompt.Resolver, partial Deployment) (*Deployment, error) {
	var err error
	d := &Deployment{}
	if d.CTFDomain, err = r.Resolve(partial.CTFDomain, "Enter CTF domain", "ctf.example.com"); err != nil {
		return nil, err
	}
	if d.ChallsDomain, err = r.Resolve(partial.ChallsDomain, "Enter challenges domain", "challs.example.com"); err != nil {
		return nil, err
	}
	if d.CertEmail, err = r.Resolve(partial.CertEmail, "Enter cert email", "cert@example.com"); err != nil {
		return nil, err
	}
	if d.ChallRepo, err = r.Resolve(partial.ChallRepo, "Enter challenge repository URL", "https://PAT:@github.com/user/repo.git"); err != nil {
		return nil, err
	}
	return d, nil
}

// Secrets are generated fresh on every run.
type Secrets struct {
	AdminPass    string
	RegistryPass string
	SecretKey    string
	AdminToken   string
}

// NewSecrets generates an independent random token for each secret.
func NewSecrets() (*Secrets, error) {
	s := &Secrets{}
	for _, f := range []struct {
		dst     *string
		entropy int
	}{
		{&s.AdminPass, secrets.DefaultEntropy},
		{&s.RegistryPass, secrets.DefaultEntropy},
		{&s.SecretKey, secrets.DefaultEntropy},
		{&s.AdminToken, secrets.HighEntropy},
	} {
		tok, err := secrets.Token(f.entropy)
		if err != nil {
			return nil, &errs.ErrInternal{Sub: err}
		}
		*f.dst = tok
	}
	return s, nil
}

// AnsibleEnv is the content of the Ansible variables file.
// Field order is the line order.
type AnsibleEnv struct {
	CTFDomain    string `yaml:"CTF_DOMAIN"`
	ChallsDomain string `yaml:"CHALLS_DOMAIN"`
	CertEmail    string `yaml:"CERT_EMAIL"`
	RegistryUser string `yaml:"REGISTRY_USER"`
	RegistryPass string `yaml:"REGISTRY_PASS"`
	SecretKey    string `yaml:"SECRET_KEY"`
	ChallRepo    string `yaml:"CHALL_REPO"`
	AdminPass    string `yaml:"ADMIN_PASS"`
	AdminToken   string `yaml:"ADMIN_TOKEN"`
}

func newAnsibleEnv(d *Deployment, s *Secrets) AnsibleEnv {
	return AnsibleEnv{
		CTFDomain:    d.CTFDomain,
		ChallsDomain: d.ChallsDomain,
		CertEmail:    d.CertEmail,
		RegistryUser: RegistryUser,
		RegistryPass: s.RegistryPass,
		SecretKey:    s.SecretKey,
		ChallRepo:    d.ChallRepo,
		AdminPass:    s.AdminPass,
		AdminToken:   s.AdminToken,
	}
}

func marshalAnsible(env AnsibleEnv) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(env); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalSetup(s *Secrets) []byte {
	return fmt.Appendf(nil, "export ADMIN_PASSWORD='%s'\n", s.AdminPass)
}

// Write overwrites both env files under dir. Parent directories must exist.
func Write(ctx context.Context, dir string, d *Deployment, s *Secrets) error {
	ab, err := marshalAnsible(newAnsibleEnv(d, s))
	if err != nil {
		return &errs.ErrInternal{Sub: errors.Wrap(err, "marshalling ansible env")}
	}

	files := []struct {
		path    string
		content []byte
	}{
		{filepath.Join(dir, AnsiblePath), ab},
		{filepath.Join(dir, SetupPath), marshalSetup(s)},
	}

	// Check every destination first so a missing directory leaves nothing behind
	for _, f := range files {
		parent := filepath.Dir(f.path)
		fi, err := os.Stat(parent)
		if err != nil {
			return &errs.ErrInternal{Sub: errors.Wrapf(err, "checking %s", parent)}
		}
		if !fi.IsDir() {
			return &errs.ErrInternal{Sub: errors.Errorf("%s is not a directory", parent)}
		}
	}

	for _, f := range files {
		if err := os.WriteFile(f.path, f.content, 0o600); err != nil {
			return &errs.ErrInternal{Sub: errors.Wrapf(err, "writing %s", f.path)}
		}
		global.Log().Debug(ctx, "env file written", zap.String("path", f.path))
	}
	return nil
}

// Exist reports whether both env files are present under dir.
func Exist(dir string) bool {
	for _, p := range []string{AnsiblePath, SetupPath} {
		if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
			return false
		}
	}
	return true
}

// Create resolves the deployment values, generates fresh secrets and
// writes both env files.
func Create(ctx context.Context, dir string, r *prompt.Resolver, partial Deployment) error {
	logger := global.Log()
	logger.Info(ctx, "creating .env files")

	d, err := ResolveDeployment(r, partial)
	if err != nil {
		return err
	}
	s, err := NewSecrets()
	if err != nil {
		return err
	}
	if err := Write(ctx, dir, d, s); err != nil {
		return err
	}

	logger.Info(ctx, ".env files created",
		zap.String("ctf_domain", d.CTFDomain),
		zap.String("challs_domain", d.ChallsDomain),
	)
	return nil
}

package topology

import (
	"github.com/pkg/errors"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

const (
	DefaultNodeCount   = 3
	DefaultServerType  = "cx21"
	DefaultImage       = "ubuntu-22.04"
	DefaultLocation    = "nbg1"
	DefaultTTL         = 60
	DefaultDomainName  = "example.com"
	DefaultDNSProvider = "hetzner"
)

// DefaultSSHKeys are the Hetzner SSH key names injected in every node.
var DefaultSSHKeys = []string{"my-ssh-key"}

// Config of the node set and its DNS records.
// Zero values are replaced by their defaults.
type Config struct {
	NodeCount  int
	ServerType string
	Image      string
	Location   string
	SSHKeys    []string
	TTL        int

	// DNSProvider only supports "cloudflare". The default "hetzner" has no
	// implementation, so the default configuration does not deploy.
	DNSProvider      string
	DomainName       string
	CloudflareZoneID string
}

// WithDefaults returns a copy of c with its unset fields defaulted.
func (c Config) WithDefaults() Config {
	if c.NodeCount == 0 {
		c.NodeCount = DefaultNodeCount
	}
	if c.ServerType == "" {
		c.ServerType = DefaultServerType
	}
	if c.Image == "" {
		c.Image = DefaultImage
	}
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if len(c.SSHKeys) == 0 {
		c.SSHKeys = append([]string{}, DefaultSSHKeys...)
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	if c.DNSProvider == "" {
		c.DNSProvider = DefaultDNSProvider
	}
	if c.DomainName == "" {
		c.DomainName = DefaultDomainName
	}
	return c
}

// LoadConfig reads the project configuration of the running stack.
func LoadConfig(ctx *pulumi.Context) (Config, error) {
	cfg := config.New(ctx, "")

	c := Config{
		NodeCount:        cfg.GetInt("node_count"),
		ServerType:       cfg.Get("server_type"),
		Image:            cfg.Get("image"),
		Location:         cfg.Get("location"),
		TTL:              cfg.GetInt("ttl"),
		DNSProvider:      cfg.Get("dns_provider"),
		DomainName:       cfg.Get("domain_name"),
		CloudflareZoneID: cfg.Get("cloudflare_zone_id"),
	}
	if err := cfg.GetObject("ssh_keys", &c.SSHKeys); err != nil {
		return Config{}, errors.Wrap(err, "invalid ssh_keys, should be a list of strings")
	}
	return c.WithDefaults(), nil
}

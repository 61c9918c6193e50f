package topology

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	errs "github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/errors"
)

const (
	ProviderCloudflare = "cloudflare"
)

// NodeSpec describes one server of the node set.
type NodeSpec struct {
	// Name is the Pulumi resource name.
	Name       string
	ServerType string
	Image      string
	Location   string
	SSHKeys    []string
}

// RecordSpec describes the A record of a node.
type RecordSpec struct {
	// ResourceName is the Pulumi resource name.
	ResourceName string
	// Name is the record name within the zone.
	Name    string
	Type    string
	TTL     int
	ZoneID  string
	Proxied bool
	// Node is the index of the node the record points to.
	Node int
}

// Topology is the desired node set: Records[i] points to Nodes[i].
type Topology struct {
	Nodes   []NodeSpec
	Records []RecordSpec
}

// Build computes the topology of c without contacting any provider.
func Build(c Config) (*Topology, error) {
	c = c.WithDefaults()
	if strings.ToLower(c.DNSProvider) != ProviderCloudflare {
		return nil, &errs.ErrUnsupportedProvider{Provider: c.DNSProvider}
	}
	if c.NodeCount < 0 {
		return nil, errors.Errorf("invalid node count %d", c.NodeCount)
	}

	topo := &Topology{
		Nodes:   make([]NodeSpec, 0, c.NodeCount),
		Records: make([]RecordSpec, 0, c.NodeCount),
	}
	for i := range c.NodeCount {
		topo.Nodes = append(topo.Nodes, NodeSpec{
			Name:       fmt.Sprintf("node-%d", i),
			ServerType: c.ServerType,
			Image:      c.Image,
			Location:   c.Location,
			SSHKeys:    append([]string{}, c.SSHKeys...),
		})
		topo.Records = append(topo.Records, RecordSpec{
			ResourceName: fmt.Sprintf("node-%d-dns", i),
			Name:         fmt.Sprintf("node%d", i),
			Type:         "A",
			TTL:          c.TTL,
			ZoneID:       c.CloudflareZoneID,
			Proxied:      false,
			Node:         i,
		})
	}
	return topo, nil
}

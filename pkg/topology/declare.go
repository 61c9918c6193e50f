package topology

import (
	"github.com/pulumi/pulumi-cloudflare/sdk/v5/go/cloudflare"
	"github.com/pulumi/pulumi-hcloud/sdk/go/hcloud"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// Infra holds the declared resources, in node order.
type Infra struct {
	Servers []*hcloud.Server
	Records []*cloudflare.Record
}

// Declare registers the servers and DNS records of c in the stack and
// exports node_ips, dns_records and dns_provider_used.
func Declare(ctx *pulumi.Context, c Config, opts ...pulumi.ResourceOption) (*Infra, error) {
	c = c.WithDefaults()
	topo, err := Build(c)
	if err != nil {
		return nil, err
	}

	infra := &Infra{
		Servers: make([]*hcloud.Server, 0, len(topo.Nodes)),
		Records: make([]*cloudflare.Record, 0, len(topo.Records)),
	}
	ips := pulumi.StringArray{}
	names := pulumi.StringArray{}
	for i, node := range topo.Nodes {
		srv, err := hcloud.NewServer(ctx, node.Name, &hcloud.ServerArgs{
			ServerType: pulumi.String(node.ServerType),
			Image:      pulumi.String(node.Image),
			Location:   pulumi.String(node.Location),
			SshKeys:    pulumi.ToStringArray(node.SSHKeys),
		}, opts...)
		if err != nil {
			return nil, err
		}

		rec := topo.Records[i]
		record, err := cloudflare.NewRecord(ctx, rec.ResourceName, &cloudflare.RecordArgs{
			ZoneId:  pulumi.String(rec.ZoneID),
			Name:    pulumi.String(rec.Name),
			Type:    pulumi.String(rec.Type),
			Content: srv.Ipv4Address,
			Ttl:     pulumi.Int(rec.TTL),
			Proxied: pulumi.Bool(rec.Proxied),
		}, opts...)
		if err != nil {
			return nil, err
		}

		infra.Servers = append(infra.Servers, srv)
		infra.Records = append(infra.Records, record)
		ips = append(ips, srv.Ipv4Address)
		names = append(names, record.Name)
	}

	ctx.Export("node_ips", ips)
	ctx.Export("dns_records", names)
	ctx.Export("dns_provider_used", pulumi.String(c.DNSProvider))
	return infra, nil
}

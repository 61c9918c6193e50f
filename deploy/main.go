package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/CTFd-RavenAnticheat/ctf-deploy/pkg/topology"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		cfg, err := topology.LoadConfig(ctx)
		if err != nil {
			return err
		}
		_, err = topology.Declare(ctx, cfg)
		return err
	})
}

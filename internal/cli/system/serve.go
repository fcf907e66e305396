package system

import (
	"fmt"

	"github.com/julianstephens/projcal/internal/api"
	"github.com/julianstephens/projcal/internal/cli"
	"github.com/julianstephens/projcal/internal/constants"
)

type ServeCmd struct {
	Addr string `help:"Listen address." default:"${listen_addr}" env:"PROJCAL_ADDR"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if c.Addr == "" {
		c.Addr = constants.DefaultListenAddr
	}
	fmt.Printf("Serving projcal API on %s\n", c.Addr)
	return api.New(ctx.Service, ctx.Store).Listen(ctx.Ctx, c.Addr)
}

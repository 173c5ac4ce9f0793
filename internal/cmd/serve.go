package cmd

import (
	"context"
	"fmt"

	"github.com/jimezsa/jobsink/internal/api"
	"github.com/jimezsa/jobsink/internal/filter"
	"github.com/jimezsa/jobsink/internal/store"
)

type ServeCmd struct {
	Addr string `help:"Listen address." default:":8080" env:"JOBSINK_ADDR"`
	DB   string `help:"SQLite database path." env:"JOBSINK_DB"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	st, err := store.Open(context.Background(), firstNonEmpty(c.DB, ctx.Config.DBPath))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	server := api.New(c.Addr, st, filter.DefaultCatalog(), ctx.Logger)
	return server.ListenAndServe()
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/internal/server"
	"github.com/katalvlaran/crucible/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			var cache *store.Store
			if cfg.Cache.Enabled {
				var err error
				cache, err = store.Open(store.Options{
					Dir:      cfg.Cache.Dir,
					InMemory: cfg.Cache.InMemory,
					Logger:   a.logger.With("component", "badger"),
				})
				if err != nil {
					return err
				}
				defer cache.Close()
			}

			return server.New(cfg, cache, a.logger).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

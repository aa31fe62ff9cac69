package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-structure/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the highlight and plan endpoints over HTTP",
		Example: `  vibe-structure serve --addr :9090
  curl -XPOST localhost:9090/plan -d '{"chains":[{"chainId":"A"}]}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gin.SetMode(gin.ReleaseMode)
			addr := viper.GetString("serve.addr")
			logger.Info("listening", zap.String("addr", addr))
			return server.NewRouter(logger).Run(addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	viper.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

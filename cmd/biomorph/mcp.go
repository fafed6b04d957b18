package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/biomorph/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes generate_biomorph, mutate_biomorph and render_biomorph as MCP tools,
so an agent can breed biomorphs against the configured store.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		store, closeStore, err := openStore(a.cfg, a.logger)
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(a.engine, store,
			mcp.WithLogger(a.logger),
			mcp.WithDefaultProbability(a.cfg.Probability()),
		)

		transport, _ := cmd.Flags().GetString("transport")
		switch transport {
		case "stdio":
			// Logs already go to stderr; stdout carries JSON-RPC.
			a.logger.Info("Starting biomorph MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			port, _ := cmd.Flags().GetInt("port")
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ServeSSE(ctx, port)
		}
		return fmt.Errorf("unknown transport %q (use stdio or sse)", transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().Int("port", 8081, "Port for the sse transport")
}

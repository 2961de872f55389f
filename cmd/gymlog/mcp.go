package main

import (
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	gymmcp "github.com/meltforce/gymbuddy/internal/mcp"
)

var mcpRemote string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP over stdio",
	Long: "mcp speaks the Model Context Protocol on stdin/stdout. With --remote it proxies a " +
		"running gymbuddy server; otherwise it reads the vault directly and index-backed tools are unavailable.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

		var ds gymmcp.DataSource
		if mcpRemote != "" {
			ds = gymmcp.NewHTTPClient(mcpRemote)
			log.Info("serving MCP over stdio", "remote", mcpRemote)
		} else {
			env, err := loadEnv()
			if err != nil {
				return err
			}
			ds = gymmcp.NewLocal(nil, env.store, env.cat, env.templates, env.cfg.Training)
			log.Info("serving MCP over stdio", "vault", env.cfg.Vault.Path)
		}
		return mcpserver.ServeStdio(gymmcp.New(ds, Version, log))
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpRemote, "remote", "", "gymbuddy server URL to proxy (e.g. http://gymbuddy.tail1234.ts.net)")
	rootCmd.AddCommand(mcpCmd)
}

package main

import (
	"github.com/urfave/cli/v2"

	"github.com/sondelabs/sonde/internal/mcpserver"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run an MCP server exposing analysis tools over stdio",
		Action: func(c *cli.Context) error {
			return mcpserver.NewServer(version).Run(c.Context)
		},
	}
}

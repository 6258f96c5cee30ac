package commands

import (
	"errors"
	"flag"

	"github.com/erraggy/oaslimbs/internal/cliutil"
	"github.com/erraggy/oaslimbs/internal/mcpserver"
)

// HandleMCP starts the MCP server over stdio. It blocks until the client
// disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaslimbs mcp\n\n")
		cliutil.Writef(fs.Output(), "Start a Model Context Protocol server on stdin/stdout exposing the\n")
		cliutil.Writef(fs.Output(), "extract, split_tags, classify and limbs tools.\n\n")
		cliutil.Writef(fs.Output(), "Configuration is read from OASLIMBS_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := commandContext()
	defer stop()
	return mcpserver.Run(ctx)
}

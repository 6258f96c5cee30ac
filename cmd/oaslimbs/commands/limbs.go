package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/erraggy/oaslimbs/internal/cliutil"
	"github.com/erraggy/oaslimbs/partition"
	"github.com/erraggy/oaslimbs/selector"
)

// LimbsFlags contains flags for the limbs command
type LimbsFlags struct {
	Operations bool
	Quiet      bool
}

// SetupLimbsFlags creates and configures a FlagSet for the limbs command.
// Returns the FlagSet and a LimbsFlags struct with bound flag variables.
func SetupLimbsFlags() (*flag.FlagSet, *LimbsFlags) {
	fs := flag.NewFlagSet("limbs", flag.ContinueOnError)
	flags := &LimbsFlags{}

	fs.BoolVar(&flags.Operations, "ops", false, "list the operations of each tag")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only print tag names")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only print tag names")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaslimbs limbs [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "List the tags of a Swagger 2.0 document with the file each would be split into,\n")
		cliutil.Writef(fs.Output(), "followed by untagged and multi-tag operations.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaslimbs limbs swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oaslimbs limbs --ops swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oaslimbs limbs -q swagger.yaml | xargs oaslimbs extract swagger.yaml\n")
	}

	return fs, flags
}

// HandleLimbs executes the limbs command
func HandleLimbs(args []string) error {
	fs, flags := SetupLimbsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("limbs command requires exactly one file path, URL, or '-' for stdin")
	}
	specPath := fs.Arg(0)

	logger := cliutil.NewLogger(cliutil.Diagnostics(os.Stderr, flags.Quiet), false)
	result, err := ParseSpec(specPath, logger)
	if err != nil {
		return err
	}
	doc := result.Document

	groups := selector.TagsOperations(doc)
	if flags.Quiet {
		for _, g := range groups {
			cliutil.Writef(os.Stdout, "%s\n", g.Tag)
		}
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	cliutil.Writef(tw, "TAG\tBUCKET\tOPERATIONS\n")
	for _, g := range groups {
		ops := fmt.Sprintf("%d", len(g.Operations))
		if flags.Operations {
			ops = strings.Join(operationIDs(g.Operations), ", ")
		}
		cliutil.Writef(tw, "%s\t%s\t%s\n", g.Tag, partition.Slug(g.Tag), ops)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if notag := selector.NotagOperations(doc); len(notag) > 0 {
		cliutil.Writef(os.Stdout, "\nUntagged operations (%d):\n", len(notag))
		for _, id := range operationIDs(notag) {
			cliutil.Writef(os.Stdout, "  %s\n", id)
		}
	}
	if multi := selector.MultitagsOperations(doc); len(multi) > 0 {
		cliutil.Writef(os.Stdout, "\nMulti-tag operations (%d):\n", len(multi))
		for _, id := range operationIDs(multi) {
			cliutil.Writef(os.Stdout, "  %s\n", id)
		}
	}
	return nil
}

func operationIDs(ops []selector.Operation) []string {
	ids := make([]string, len(ops))
	for i, op := range ops {
		ids[i] = op.ID()
	}
	return ids
}

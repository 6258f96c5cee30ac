package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/erraggy/oaslimbs/internal/cliutil"
	"github.com/erraggy/oaslimbs/selector"
)

// ClassifyFlags contains flags for the classify command
type ClassifyFlags struct {
	Strict bool
	Quiet  bool
}

// SetupClassifyFlags creates and configures a FlagSet for the classify command.
// Returns the FlagSet and a ClassifyFlags struct with bound flag variables.
func SetupClassifyFlags() (*flag.FlagSet, *ClassifyFlags) {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	flags := &ClassifyFlags{}

	fs.BoolVar(&flags.Strict, "strict", false, "exit with an error if any limb matches nothing")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress parser warnings")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress parser warnings")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaslimbs classify [flags] <file|url|-> <limb> [limb...]\n\n")
		cliutil.Writef(fs.Output(), "Report whether each limb names an operation, a path or a tag, and which\n")
		cliutil.Writef(fs.Output(), "operations it selects.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaslimbs classify swagger.yaml pets '/pets/{petId}' 'get /store/orders'\n")
		cliutil.Writef(fs.Output(), "  oaslimbs classify --strict swagger.yaml pets\n")
		cliutil.Writef(fs.Output(), "\nOutput:\n")
		cliutil.Writef(fs.Output(), "  One tab-separated line per limb: limb, kind, selected operations.\n")
		cliutil.Writef(fs.Output(), "  Limbs that match nothing have kind \"unknown\".\n")
	}

	return fs, flags
}

// HandleClassify executes the classify command
func HandleClassify(args []string) error {
	fs, flags := SetupClassifyFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("classify command requires a file path, URL, or '-' and at least one limb")
	}
	specPath := fs.Arg(0)
	limbs := fs.Args()[1:]

	logger := cliutil.NewLogger(cliutil.Diagnostics(os.Stderr, flags.Quiet), false)
	result, err := ParseSpec(specPath, logger)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	var unknown []string
	for _, limb := range limbs {
		kind, err := selector.Classify(limb, result.Document)
		if err != nil {
			unknown = append(unknown, limb)
			cliutil.Writef(tw, "%s\tunknown\t\n", limb)
			continue
		}
		ops, _ := selector.Resolve([]string{limb}, result.Document)
		cliutil.Writef(tw, "%s\t%s\t%s\n", limb, kind, strings.Join(ops, ", "))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if flags.Strict && len(unknown) > 0 {
		return fmt.Errorf("%d limb(s) match nothing: %s", len(unknown), strings.Join(unknown, ", "))
	}
	return nil
}

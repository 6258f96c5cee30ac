package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/oaslimbs/internal/cliutil"
	"github.com/erraggy/oaslimbs/internal/pathutil"
	"github.com/erraggy/oaslimbs/partition"
	"github.com/erraggy/oaslimbs/resolver"
	"github.com/erraggy/oaslimbs/subset"
	"github.com/erraggy/oaslimbs/writer"
)

// SplitFlags contains flags for the split command
type SplitFlags struct {
	Dir            string
	Format         string
	MultitagsError bool
	NotagError     bool
	NoNotag        bool
	NotagName      string
	Concurrency    int
	HTTPRefs       bool
	Quiet          bool
	Verbose        bool
}

// SetupSplitFlags creates and configures a FlagSet for the split command.
// Returns the FlagSet and a SplitFlags struct with bound flag variables.
func SetupSplitFlags() (*flag.FlagSet, *SplitFlags) {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	flags := &SplitFlags{}

	fs.StringVar(&flags.Dir, "d", ".", "output directory for the per-tag documents")
	fs.StringVar(&flags.Dir, "dir", ".", "output directory for the per-tag documents")
	fs.StringVar(&flags.Format, "f", "", "output format: json or yaml (default: input format)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: input format)")
	fs.BoolVar(&flags.MultitagsError, "multitags-error", false, "fail when an operation carries more than one tag")
	fs.BoolVar(&flags.NotagError, "notag-error", false, "fail when an operation carries no tag")
	fs.BoolVar(&flags.NoNotag, "no-notag", false, "do not write a document for untagged operations")
	fs.StringVar(&flags.NotagName, "notag-name", partition.DefaultNotagName, "name of the document holding untagged operations")
	fs.IntVar(&flags.Concurrency, "concurrency", 0, "maximum tags extracted at once (0: no limit)")
	fs.BoolVar(&flags.HTTPRefs, "http-refs", false, "allow loading http(s) references")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose mode: log bundling decisions to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose mode: log bundling decisions to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaslimbs split [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Split a Swagger 2.0 document into one self-contained document per tag.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaslimbs split -d parts swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oaslimbs split --multitags-error --notag-error -f json -d parts swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  oaslimbs split --notag-name misc -d parts swagger.yaml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Files are named after the tag, lower-cased with accents removed (\"Pet Store\" -> pet-store.yaml)\n")
		cliutil.Writef(fs.Output(), "  - Operations with several tags are written to each of their tag documents\n")
		cliutil.Writef(fs.Output(), "  - Nothing is written if any tag fails\n")
	}

	return fs, flags
}

// HandleSplit executes the split command
func HandleSplit(args []string) error {
	fs, flags := SetupSplitFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("split command requires exactly one file path, URL, or '-' for stdin")
	}
	specPath := fs.Arg(0)

	if flags.Format != "" {
		if _, err := writer.ParseFormat(flags.Format); err != nil {
			return err
		}
	}
	if flags.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency %d: must not be negative", flags.Concurrency)
	}
	dir, err := pathutil.SanitizeOutputDir(flags.Dir)
	if err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}

	logger := cliutil.NewLogger(os.Stderr, flags.Verbose)
	diag := cliutil.Diagnostics(os.Stderr, flags.Quiet)

	startTime := time.Now()
	result, err := ParseSpec(specPath, logger)
	if err != nil {
		return err
	}
	format, err := ResolveFormat(flags.Format, "", result.SourceFormat)
	if err != nil {
		return err
	}

	cfg := partition.DefaultConfig()
	cfg.MultitagsError = flags.MultitagsError
	cfg.NotagError = flags.NotagError
	cfg.IncludeNotag = !flags.NoNotag
	cfg.NotagName = flags.NotagName

	resolverOpts := append(subset.SourceResolverOptions(result),
		resolver.WithHTTPRefs(flags.HTTPRefs),
		resolver.WithLogger(logger),
	)

	ctx, stop := commandContext()
	defer stop()
	results, err := partition.Split(ctx, result.Document, cfg,
		subset.WithConcurrency(flags.Concurrency),
		subset.WithLogger(logger),
		subset.WithResolverOptions(resolverOpts...),
	)
	if err != nil {
		return fmt.Errorf("splitting by tag: %w", err)
	}

	files, err := writer.WriteDir(dir, results, format)
	if err != nil {
		return fmt.Errorf("writing output files: %w", err)
	}
	totalTime := time.Since(startTime)

	cliutil.Writef(diag, "Swagger Tag Splitter\n")
	cliutil.Writef(diag, "====================\n\n")
	OutputSpecHeader(diag, specPath, result)
	cliutil.Writef(diag, "Output Directory: %s\n", dir)
	cliutil.Writef(diag, "Format: %s\n", format)
	cliutil.Writef(diag, "Total Time: %v\n\n", totalTime)
	for i, r := range results {
		cliutil.Writef(diag, "  %-24s %3d operations %3d definitions  %s\n",
			r.Name, r.Stats.OperationCount, r.Stats.DefinitionCount, files[i])
	}
	cliutil.Writef(diag, "\nWrote %d documents.\n", len(files))
	return nil
}

package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/erraggy/oaslimbs/internal/cliutil"
	"github.com/erraggy/oaslimbs/parser"
	"github.com/erraggy/oaslimbs/resolver"
	"github.com/erraggy/oaslimbs/subset"
	"github.com/erraggy/oaslimbs/writer"
)

// propertyFlag collects top-level property names. It may be repeated and
// each value may hold a comma-separated list.
type propertyFlag []string

// String returns the string representation of the flag value
func (p *propertyFlag) String() string {
	if p == nil {
		return ""
	}
	return strings.Join(*p, ",")
}

// Set appends the names in value
func (p *propertyFlag) Set(value string) error {
	for name := range strings.SplitSeq(value, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("empty property name in %q", value)
		}
		*p = append(*p, name)
	}
	return nil
}

// ExtractFlags contains flags for the extract command
type ExtractFlags struct {
	Output     string
	Format     string
	Anchor     string
	Properties propertyFlag
	HTTPRefs   bool
	Quiet      bool
	Verbose    bool
}

// SetupExtractFlags creates and configures a FlagSet for the extract command.
// Returns the FlagSet and an ExtractFlags struct with bound flag variables.
func SetupExtractFlags() (*flag.FlagSet, *ExtractFlags) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	flags := &ExtractFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "f", "", "output format: json or yaml (default: from output extension, then input format)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: from output extension, then input format)")
	fs.StringVar(&flags.Anchor, "a", subset.DefaultAnchor, "name external references to the parent are resolved against")
	fs.StringVar(&flags.Anchor, "anchor", subset.DefaultAnchor, "name external references to the parent are resolved against")
	fs.Var(&flags.Properties, "property", "top-level property copied from the parent (repeatable, comma-separated)")
	fs.BoolVar(&flags.HTTPRefs, "http-refs", false, "allow loading http(s) references")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose mode: log bundling decisions to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose mode: log bundling decisions to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaslimbs extract [flags] <file|url|-> <limb> [limb...]\n\n")
		cliutil.Writef(fs.Output(), "Extract a self-contained Swagger 2.0 document holding the selected limbs.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nLimbs:\n")
		cliutil.Writef(fs.Output(), "  \"get /pets\"   one operation (method and path separated by a space)\n")
		cliutil.Writef(fs.Output(), "  /pets         every operation of a path\n")
		cliutil.Writef(fs.Output(), "  pets          every operation carrying a tag\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaslimbs extract swagger.yaml pets\n")
		cliutil.Writef(fs.Output(), "  oaslimbs extract -o orders.json swagger.yaml /store/orders \"get /pets/{petId}\"\n")
		cliutil.Writef(fs.Output(), "  oaslimbs extract --property swagger,info -f json swagger.yaml store\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  cat swagger.yaml | oaslimbs extract -q - pets > pets.yaml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Use '-' as the file path to read from stdin\n")
		cliutil.Writef(fs.Output(), "  - References to sibling files are loaded relative to the input file\n")
		cliutil.Writef(fs.Output(), "  - When -o is specified, file is written with restrictive permissions (0600)\n")
	}

	return fs, flags
}

// HandleExtract executes the extract command
func HandleExtract(args []string) error {
	fs, flags := SetupExtractFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("extract command requires a file path, URL, or '-' for stdin and at least one limb")
	}
	specPath := fs.Arg(0)
	limbs := fs.Args()[1:]

	if flags.Format != "" {
		if _, err := writer.ParseFormat(flags.Format); err != nil {
			return err
		}
	}
	var outputPath string
	if flags.Output != "" {
		var err error
		if outputPath, err = ValidateOutputPath(flags.Output, []string{specPath}); err != nil {
			return err
		}
	}

	logger := cliutil.NewLogger(os.Stderr, flags.Verbose)
	diag := cliutil.Diagnostics(os.Stderr, flags.Quiet)

	startTime := time.Now()
	result, err := ParseSpec(specPath, logger)
	if err != nil {
		return err
	}
	format, err := ResolveFormat(flags.Format, flags.Output, result.SourceFormat)
	if err != nil {
		return err
	}

	resolverOpts := append(subset.SourceResolverOptions(result),
		resolver.WithHTTPRefs(flags.HTTPRefs),
		resolver.WithLogger(logger),
	)
	opts := []subset.Option{
		subset.WithAnchor(flags.Anchor),
		subset.WithLogger(logger),
		subset.WithResolverOptions(resolverOpts...),
	}
	if len(flags.Properties) > 0 {
		opts = append(opts, subset.WithProperties(flags.Properties...))
	}

	ctx, stop := commandContext()
	defer stop()
	child, err := subset.Extract(ctx, result.Document, limbs, opts...)
	if err != nil {
		return fmt.Errorf("extracting limbs: %w", err)
	}
	totalTime := time.Since(startTime)

	cliutil.Writef(diag, "Swagger Limb Extractor\n")
	cliutil.Writef(diag, "======================\n\n")
	OutputSpecHeader(diag, specPath, result)
	cliutil.Writef(diag, "Limbs: %s\n", strings.Join(limbs, ", "))
	if outputPath != "" {
		cliutil.Writef(diag, "Output: %s\n", outputPath)
	} else {
		cliutil.Writef(diag, "Output: <stdout>\n")
	}
	cliutil.Writef(diag, "Format: %s\n\n", format)
	OutputSpecStats(diag, parser.GetDocumentStats(child))
	cliutil.Writef(diag, "Total Time: %v\n\n", totalTime)

	if outputPath != "" {
		if err := writer.WriteFile(outputPath, child, format); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		cliutil.Writef(diag, "Output written to: %s\n", outputPath)
		return nil
	}
	if err := writer.Write(os.Stdout, child, format); err != nil {
		return fmt.Errorf("writing child document to stdout: %w", err)
	}
	return nil
}

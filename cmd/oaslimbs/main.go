package main

import (
	"fmt"
	"os"

	"github.com/agnivade/levenshtein"

	"github.com/erraggy/oaslimbs"
	"github.com/erraggy/oaslimbs/cmd/oaslimbs/commands"
)

// maxSuggestDistance is the largest edit distance for which an unknown
// command gets a "did you mean" hint.
const maxSuggestDistance = 2

var handlers = map[string]func([]string) error{
	"extract":  commands.HandleExtract,
	"chainsaw": commands.HandleExtract,
	"split":    commands.HandleSplit,
	"classify": commands.HandleClassify,
	"limbs":    commands.HandleLimbs,
	"mcp":      commands.HandleMCP,
}

// commandNames lists every name suggestCommand may return, in the order
// ties are broken.
var commandNames = []string{"extract", "split", "classify", "limbs", "mcp", "chainsaw", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oaslimbs v%s\n\n%s\n", oaslimbs.Version(), oaslimbs.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	handler, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
	if err := handler(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within maxSuggestDistance edits.
func suggestCommand(input string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, name := range commandNames {
		if d := levenshtein.ComputeDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func printUsage() {
	fmt.Print(`oaslimbs - Cut self-contained limbs out of Swagger 2.0 documents

Usage:
  oaslimbs <command> [options]

Commands:
  extract     Extract the operations named by limbs into a new document
  split       Write one document per tag
  classify    Report what each limb names and the operations it selects
  limbs       List the tags of a document and its untagged operations
  mcp         Start an MCP server on stdio
  version     Show version information
  help        Show this help message

A limb is an operation ("get /pets"), a path (/pets) or a tag (pets).

Examples:
  oaslimbs extract swagger.yaml pets "get /store/orders" > child.yaml
  oaslimbs split -d parts --notag-error swagger.yaml
  oaslimbs classify swagger.yaml /pets store
  oaslimbs limbs swagger.yaml

Run 'oaslimbs <command> --help' for more information on a command.
`)
}

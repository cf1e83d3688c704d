package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/mihaelamj/stitcher"
	"github.com/mihaelamj/stitcher/internal/fileutil"
	"github.com/mihaelamj/stitcher/internal/mcpserver"
	"github.com/mihaelamj/stitcher/resolver"
	"github.com/mihaelamj/stitcher/stitch"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("stitcher v%s\n", stitcher.Version())
	case "help", "-h", "--help":
		printUsage()
	case "stitch":
		if err := handleStitch(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

type stitchFlags struct {
	output   string
	format   string
	base     string
	maxDepth int
	insecure bool
	verbose  bool
}

func setupStitchFlags() (*flag.FlagSet, *stitchFlags) {
	flags := &stitchFlags{}
	fs := flag.NewFlagSet("stitch", flag.ContinueOnError)
	fs.StringVar(&flags.output, "out", "", "write the stitched document to a file instead of stdout")
	fs.StringVar(&flags.format, "format", "", "output format: yaml or json (default: match input)")
	fs.StringVar(&flags.base, "base", "", "base location for input read from stdin")
	fs.IntVar(&flags.maxDepth, "max-depth", 0, "maximum $ref recursion depth (0 = default)")
	fs.BoolVar(&flags.insecure, "insecure", false, "disable TLS certificate verification for URL fetches")
	fs.BoolVar(&flags.verbose, "verbose", false, "log resolution progress to stderr")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stitcher stitch [options] <file|url|->\n\n")
		fmt.Fprintf(os.Stderr, "Resolve every external $ref and print one self-contained document.\n")
		fmt.Fprintf(os.Stderr, "Pass - to read the root document from stdin.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	return fs, flags
}

func handleStitch(args []string) error {
	fs, flags := setupStitchFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("stitch command requires exactly one file path, URL, or -")
	}
	input := fs.Arg(0)

	opts := []stitch.Option{
		stitch.WithContext(interruptContext()),
		stitch.WithMaxDepth(flags.maxDepth),
		stitch.WithInsecureSkipVerify(flags.insecure),
	}
	if flags.format != "" {
		opts = append(opts, stitch.WithOutputFormat(stitch.OutputFormat(flags.format)))
	}
	if flags.verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, stitch.WithLogger(resolver.NewSlogAdapter(slog.New(handler))))
	}

	switch {
	case input == "-":
		opts = append(opts, stitch.WithReader(os.Stdin))
		if flags.base != "" {
			opts = append(opts, stitch.WithBaseLocation(flags.base))
		}
	case resolver.IsURLString(input):
		opts = append(opts, stitch.WithURL(input))
	default:
		opts = append(opts, stitch.WithFilePath(input))
	}

	result, err := stitch.StitchWithOptions(opts...)
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, result.Output, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Printf("Stitched document written to %s (%d fetches)\n", flags.output, result.FetchCount)
		return nil
	}

	_, err = os.Stdout.Write(result.Output)
	return err
}

func handleMCP() error {
	return mcpserver.Run(interruptContext())
}

// interruptContext returns a context cancelled on the first SIGINT.
func interruptContext() context.Context {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	_ = stop // released on process exit
	return ctx
}

func printUsage() {
	fmt.Printf(`stitcher v%s - stitch multi-file API descriptions into one document

Usage: stitcher <command> [options]

Commands:
  stitch <file|url|->   Resolve external $refs and print the result
  mcp                   Run the MCP server over stdio
  version               Show version information
  help                  Show this help

Run 'stitcher <command> -h' for command options.
`, stitcher.Version())
}

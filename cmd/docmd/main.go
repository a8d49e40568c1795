// Command docmd converts between DOCX documents and Markdown or JSON
// element descriptions.
//
// Usage:
//
//	docmd read <path.docx> [-format markdown|text]
//	docmd write <out.docx> -content <path.md|path.json> [-template base.docx] [-config cfg.yaml]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/docmd"
	"github.com/tsawler/docmd/docx"
	"github.com/tsawler/docmd/format"
	"github.com/tsawler/docmd/markdown"
	"github.com/tsawler/docmd/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "read":
		err = runRead(os.Args[2:])
	case "write":
		err = runWrite(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "docmd: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "docmd:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `docmd converts between DOCX and Markdown/JSON element lists.

Usage:
  docmd read <path.docx> [-format markdown|text] [-v]
  docmd write <out.docx> -content <path.md|path.json> [-template base.docx] [-config cfg.yaml] [-v]
`)
}

// splitTarget pulls a leading positional argument off the argument list
// so both "docmd write out.docx -content x" and
// "docmd write -content x out.docx" parse.
func splitTarget(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func runRead(args []string) error {
	target, args := splitTarget(args)

	fs := flag.NewFlagSet("read", flag.ExitOnError)
	outFormat := fs.String("format", "markdown", "output format: markdown or text")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if target == "" && fs.NArg() == 1 {
		target = fs.Arg(0)
	}
	if target == "" {
		return errors.New("usage: docmd read <path.docx> [-format markdown|text]")
	}
	setupLogger(*verbose)

	conv := docmd.Open(target)
	var out string
	var err error
	switch *outFormat {
	case "markdown":
		out, err = conv.Markdown()
	case "text":
		out, err = conv.Text()
	default:
		return fmt.Errorf("unknown output format %q (want markdown or text)", *outFormat)
	}
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runWrite(args []string) error {
	target, args := splitTarget(args)

	fs := flag.NewFlagSet("write", flag.ExitOnError)
	content := fs.String("content", "", "path to .md or .json content file (required)")
	template := fs.String("template", "", "path to a template .docx")
	configPath := fs.String("config", "", "path to a YAML writer configuration")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if target == "" && fs.NArg() == 1 {
		target = fs.Arg(0)
	}
	if target == "" || *content == "" {
		return errors.New("usage: docmd write <out.docx> -content <path.md|path.json> [-template base.docx]")
	}
	setupLogger(*verbose)

	opts, err := loadOptions(*configPath)
	if err != nil {
		return err
	}
	if *template != "" {
		opts.Template = *template
	}

	elements, err := loadElements(*content)
	if err != nil {
		return err
	}

	return docx.NewWriter(opts).BuildFile(elements, target)
}

// loadOptions reads writer defaults from a YAML file, or returns zero
// options (library defaults) when no path is given.
func loadOptions(path string) (docx.Options, error) {
	var opts docx.Options
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return opts, nil
}

// loadElements reads a content file and converts it to elements,
// dispatching on detected format (JSON object vs Markdown text).
func loadElements(path string) ([]model.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}

	switch format.DetectBytes(data) {
	case format.JSON:
		return model.DecodeElements(data)
	case format.Markdown:
		return markdown.Parse(string(data)), nil
	case format.DOC, format.DOCX:
		return nil, fmt.Errorf("content file %s is a document, not Markdown or JSON", path)
	default:
		// Empty files read as an empty Markdown document.
		return nil, nil
	}
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

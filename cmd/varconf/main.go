// Command varconf converts varconf configuration files to YAML or JSON.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/uplang/varconf"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "varconf",
		Usage:     "convert varconf configuration files to YAML or JSON",
		UsageText: "varconf -i INPUT [-i OVERLAY ...] -o OUTPUT [options]",
		Flags: append(parserFlags(),
			&cli.StringSliceFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "input file; repeat to merge overlays in order",
				EnvVars: []string{"VARCONF_INPUT"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file, - for stdout",
				EnvVars: []string{"VARCONF_OUTPUT"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: yaml or json (default: from the output extension)",
			},
			&cli.StringFlag{
				Name:  "lists",
				Value: string(varconf.ListReplace),
				Usage: "how arrays from overlays combine: replace, append or unique",
			},
			&cli.BoolFlag{
				Name:  "shallow",
				Usage: "replace tables from overlays instead of merging them",
			},
		),
		Action: convert,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "parse files and report every error",
				ArgsUsage: "FILE...",
				Flags:     parserFlags(),
				Action:    check,
			},
		},
	}
}

// parserFlags are shared by every command that parses input.
func parserFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "encoding",
			Aliases: []string{"e"},
			Value:   "utf-8",
			Usage:   "text encoding of the input files",
			EnvVars: []string{"VARCONF_ENCODING"},
		},
		&cli.BoolFlag{
			Name:  "lenient",
			Usage: "keep unknown scalars and placeholders as text instead of failing",
		},
		&cli.IntFlag{
			Name:  "max-depth",
			Value: varconf.DefaultMaxDepth,
			Usage: "maximum nesting of arrays and tables",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log progress to stderr",
		},
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}

func newLoader(c *cli.Context) (*varconf.Loader, error) {
	parser := varconf.NewParser().
		WithMaxDepth(c.Int("max-depth")).
		WithLenient(c.Bool("lenient"))
	return varconf.NewLoader(parser).WithEncoding(c.String("encoding"))
}

func convert(c *cli.Context) error {
	log := newLogger(c)

	inputs := c.StringSlice("input")
	output := c.String("output")
	if len(inputs) == 0 || output == "" {
		return cli.Exit("both --input and --output are required", 2)
	}

	format, err := outputFormat(c.String("format"), output)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	loader, err := newLoader(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	opts := varconf.MergeOptions{
		Strategy: varconf.MergeDeep,
		Lists:    varconf.ListStrategy(c.String("lists")),
	}
	switch opts.Lists {
	case varconf.ListReplace, varconf.ListAppend, varconf.ListUnique:
	default:
		return cli.Exit(fmt.Sprintf("unknown list strategy %q", opts.Lists), 2)
	}
	if c.Bool("shallow") {
		opts.Strategy = varconf.MergeReplace
	}
	loader.WithMerge(opts)

	log.Debug("loading", "inputs", inputs, "encoding", c.String("encoding"))
	doc, err := loader.LoadFiles(inputs...)
	if err != nil {
		return err
	}
	log.Debug("parsed", "keys", doc.Len())

	var buf bytes.Buffer
	if err := encode(&buf, doc, format); err != nil {
		return err
	}

	if output == "-" {
		_, err = io.Copy(c.App.Writer, &buf)
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info("converted", "output", output, "format", format)
	return nil
}

func outputFormat(format, output string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".json":
			return "json", nil
		default:
			return "yaml", nil
		}
	}
	switch format = strings.ToLower(format); format {
	case "yaml", "yml":
		return "yaml", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func encode(w io.Writer, doc *varconf.Document, format string) error {
	if format == "json" {
		return varconf.EncodeJSON(w, doc)
	}
	return varconf.EncodeYAML(w, doc)
}

// check parses every file concurrently and prints one line per failure.
func check(c *cli.Context) error {
	log := newLogger(c)

	files := c.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("no files to check", 2)
	}

	loader, err := newLoader(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	errs := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			_, errs[i] = loader.LoadFile(file)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			fmt.Fprintln(c.App.ErrWriter, err)
			continue
		}
		log.Debug("ok", "file", files[i])
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, len(files)), 1)
	}
	return nil
}

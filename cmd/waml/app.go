package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/KimNorgaard/go-waml"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const defaultChunkSize = 4096

// env is the state shared by the commands of one run.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	e := &env{stdin: stdin, stdout: stdout}
	return &cli.App{
		Name:      "waml",
		Usage:     "format, validate and convert WAML documents",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		// Errors are returned to main, which picks the exit code.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log decoding progress to stderr"},
			&cli.IntFlag{Name: "chunk-size", Value: defaultChunkSize, Usage: "bytes read and written at a time"},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelWarn
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			e.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "fmt",
				Usage:     "reformat a document",
				ArgsUsage: "[file]",
				Flags:     layoutFlags(),
				Action:    e.format,
			},
			{
				Name:      "check",
				Usage:     "validate a document and report the first error",
				ArgsUsage: "[file]",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "exprs", Usage: "read identifiers as expression references"}},
				Action:    e.check,
			},
			{
				Name:      "to-yaml",
				Usage:     "convert a document to YAML",
				ArgsUsage: "[file]",
				Action:    e.toYAML,
			},
			{
				Name:      "from-yaml",
				Usage:     "convert a YAML document to WAML",
				ArgsUsage: "[file]",
				Flags:     layoutFlags(),
				Action:    e.fromYAML,
			},
		},
	}
}

func layoutFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "indent", Value: 2, Usage: "spaces per nesting level, 0 for a single line"},
		&cli.BoolFlag{Name: "compact", Usage: "single line without optional whitespace"},
		&cli.BoolFlag{Name: "text-blocks", Value: true, Usage: "write multi-line strings as text blocks"},
		&cli.IntFlag{Name: "inline-limit", Value: 4, Usage: "keep collections of at most this many scalars on one line"},
		&cli.BoolFlag{Name: "exprs", Usage: "read identifiers as expression references"},
	}
}

func (e *env) common(c *cli.Context) []waml.Option {
	return []waml.Option{
		waml.ChunkSize(c.Int("chunk-size")),
		waml.WithLogger(e.logger),
		waml.Exprs(c.Bool("exprs")),
	}
}

func (e *env) layout(c *cli.Context) []waml.Option {
	opts := append(e.common(c),
		waml.Indent(c.Int("indent")),
		waml.InlineLimit(c.Int("inline-limit")),
		waml.TextBlocks(c.Bool("text-blocks")),
	)
	if c.Bool("compact") {
		opts = append(opts, waml.Compact())
	}
	return opts
}

// decode reads the document named by the first argument.
func (e *env) decode(c *cli.Context, opts []waml.Option) (any, string, error) {
	r, name, err := openInput(c.Args().First(), e.stdin)
	if err != nil {
		return nil, name, err
	}
	defer r.Close()
	var v any
	if err := waml.NewDecoder(r, opts...).Decode(&v); err != nil {
		return nil, name, fmt.Errorf("%s: %w", name, err)
	}
	return v, name, nil
}

func (e *env) format(c *cli.Context) error {
	v, _, err := e.decode(c, e.common(c))
	if err != nil {
		return err
	}
	return waml.NewEncoder(e.stdout, e.layout(c)...).Encode(v)
}

func (e *env) check(c *cli.Context) error {
	_, name, err := e.decode(c, e.common(c))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	_, err = fmt.Fprintf(e.stdout, "%s: ok\n", name)
	return err
}

func (e *env) toYAML(c *cli.Context) error {
	v, name, err := e.decode(c, e.common(c))
	if err != nil {
		return err
	}
	n, err := toNode(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	enc := yaml.NewEncoder(e.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return err
	}
	return enc.Close()
}

func (e *env) fromYAML(c *cli.Context) error {
	r, name, err := openInput(c.Args().First(), e.stdin)
	if err != nil {
		return err
	}
	defer r.Close()
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", name, err)
	}
	v, err := fromNode(&doc)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return waml.NewEncoder(e.stdout, e.layout(c)...).Encode(v)
}

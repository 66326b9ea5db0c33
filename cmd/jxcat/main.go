// Command jxcat parses a JSON file (or stdin) with kws and writes it
// back out as compact JSON, reporting syntax errors with line:column
// position when parsing fails.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cjmont32/kws"
)

type config struct {
	tabStop        int
	readBufferSize int
	extArrayComma  bool
	extObjectComma bool
	extUtf8Pi      bool
	escape         bool
}

func (c *config) registerFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.tabStop, "tab-stop", 4,
		"tab stop width used for column tracking")
	flags.IntVar(&c.readBufferSize, "read-buffer-size", 2048,
		"chunk size used when reading from stdin or a file (max 8192)")
	flags.BoolVar(&c.extArrayComma, "allow-array-trailing-comma", false,
		"accept a trailing comma before ']'")
	flags.BoolVar(&c.extObjectComma, "allow-object-trailing-comma", false,
		"accept a trailing comma before '}'")
	flags.BoolVar(&c.extUtf8Pi, "allow-utf8-pi", false,
		"accept a bare pi code point as a numeric literal")
	flags.BoolVar(&c.escape, "escape", false,
		"wrap the re-serialized output in a quoted JSON string literal")
}

func (c *config) extensions() kws.ExtSet {
	var ext kws.ExtSet
	if c.extArrayComma {
		ext |= kws.ExtArrayTrailingComma
	}
	if c.extObjectComma {
		ext |= kws.ExtObjectTrailingComma
	}
	if c.extUtf8Pi {
		ext |= kws.ExtUtf8Pi
	}
	return ext
}

func main() {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:           "jxcat [file]",
		Short:         "Parse and re-serialize a JSON document",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}
			return run(cfg, path)
		},
	}

	cfg.registerFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jxcat: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config, path string) error {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	c := kws.New(
		kws.WithTabStopWidth(cfg.tabStop),
		kws.WithReadBufferSize(cfg.readBufferSize),
		kws.WithExtensions(cfg.extensions()),
	)

	v, err := c.ReadFrom(r)
	if err != nil {
		return err
	}
	defer kws.Free(v)

	out, ok := kws.Serialize(v)
	if !ok {
		return fmt.Errorf("document did not produce an array or object root")
	}
	if cfg.escape {
		out = kws.Escape(out)
	}

	fmt.Println(out)
	return nil
}

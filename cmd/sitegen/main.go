// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/sitegen/internal/site"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Run(ctx, new(app))
	cancel()

	code := exitStatus(err)
	var ee *exitError
	if code != 0 && !errors.As(err, &ee) {
		fmt.Fprintf(os.Stdout, "sitegen error: %v\n", err)
	}
	os.Exit(code)
}

type app struct {
	output  string
	verbose bool
	minify  bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.output, "o", "", "Write the site to `dir` (default <input_dir>/html).")
	fs.StringVar(&a.output, "output", "", "Write the site to `dir` (default <input_dir>/html).")
	fs.BoolVar(&a.verbose, "v", false, "Print a line for every written page.")
	fs.BoolVar(&a.verbose, "verbose", false, "Print a line for every written page.")
	fs.BoolVar(&a.minify, "minify", false, "Minify pages and static CSS, JavaScript and JSON files.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if code := a.generate(env.Stdout, env.Args); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// exitError is returned by Run when generation fails. The reason has already
// been printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// exitStatus maps the error returned by cli.Run to the process exit code.
// Errors that don't come from generation are flag parsing failures.
func exitStatus(err error) int {
	var ee *exitError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp), errors.Is(err, cli.ErrExitVersion):
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		return 2
	}
}

// generate builds the site and returns the process exit code. Diagnostics
// and progress lines are written to w.
func (a *app) generate(w io.Writer, args []string) int {
	input, err := a.parseArgs(args)
	if err != nil {
		fmt.Fprintf(w, "sitegen error: %v\n", err)
		return 2
	}

	err = site.Build(&site.Config{
		Src:     input,
		Dst:     a.output,
		Verbose: a.verbose,
		Minify:  a.minify,
		Logf: func(format string, args ...any) {
			fmt.Fprintf(w, format+"\n", args...)
		},
		Warn: func(err error) {
			fmt.Fprintf(w, "sitegen error: %v\n", err)
		},
	})
	if err != nil {
		fmt.Fprintf(w, "sitegen error: %v\n", err)
	}
	return exitCode(err)
}

// parseArgs returns the input directory. Flags that follow it are parsed
// too, since the flag package stops at the first positional argument.
func (a *app) parseArgs(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: missing input directory", cli.ErrInvalidArgs)
	}
	input := args[0]

	fs := flag.NewFlagSet("sitegen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	// Registering flags resets them to defaults, keep what was already set.
	prev := *a
	a.Flags(fs)
	a.output, a.verbose, a.minify = prev.output, prev.verbose, prev.minify
	if err := fs.Parse(args[1:]); err != nil {
		return "", fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}
	if fs.NArg() > 0 {
		return "", fmt.Errorf("%w: unexpected argument %q", cli.ErrInvalidArgs, fs.Arg(0))
	}

	fi, err := os.Stat(input)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: input directory %q does not exist", cli.ErrInvalidArgs, input)
	} else if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory", cli.ErrInvalidArgs, input)
	}

	return input, nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, site.ErrManifestNotFound):
		return 2
	case errors.Is(err, site.ErrManifestParse):
		return 3
	case errors.Is(err, site.ErrTemplate):
		return 4
	default:
		return 1
	}
}

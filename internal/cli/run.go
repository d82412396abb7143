// Package cli implements the smilegen command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/smilegen/internal/config"
	"github.com/calvinalkan/smilegen/internal/fixture"
	"github.com/calvinalkan/smilegen/internal/fs"
	"github.com/calvinalkan/smilegen/internal/gen"
)

// ErrOutDirNeedsOneCategory is returned when --out-dir is combined with
// anything but a single category.
var ErrOutDirNeedsOneCategory = errors.New("--out-dir requires exactly one category")

// app is the state shared by all commands. cfg is filled in after the global
// flags are parsed, so command constructors must only read it inside Exec.
type app struct {
	cfg config.Config
	fs  fs.FS
}

func (a *app) params() gen.Params {
	s := a.cfg.Shared

	return gen.Params{
		ABCount:       s.ABCount,
		LargeDistinct: s.LargeDistinct,
		LargeCopies:   s.LargeCopies,
		EvictCount:    s.EvictCount,
	}
}

func (a *app) encodeOptions() fixture.EncodeOptions {
	return fixture.EncodeOptions{EnsureASCII: a.cfg.EnsureASCII}
}

// categoryDir returns where category c lives: outDir when given (resolved
// against the work dir), otherwise <tests-dir>/<name>.
func (a *app) categoryDir(c gen.Category, outDir string) string {
	if outDir == "" {
		return filepath.Join(a.cfg.TestsDirAbs, c.Name)
	}

	if filepath.IsAbs(outDir) {
		return filepath.Clean(outDir)
	}

	return filepath.Join(a.cfg.WorkDir, outDir)
}

// selectCategories resolves args, enforcing the single category rule for
// --out-dir.
func selectCategories(args []string, outDir string) ([]gen.Category, error) {
	cats, err := gen.Select(args)
	if err != nil {
		return nil, err
	}

	if outDir != "" && len(cats) != 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrOutDirNeedsOneCategory, len(cats))
	}

	return cats, nil
}

func newCommands(a *app) []*Command {
	return []*Command{
		GenerateCmd(a),
		CheckCmd(a),
		ListCmd(a),
		PrintConfigCmd(a),
	}
}

// Run is the main entry point. Returns exit code.
// sigCh can be nil if signal handling is not needed (e.g., in tests).
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globalFlags := flag.NewFlagSet("smilegen", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.SetOutput(io.Discard)
	globalFlags.Usage = func() {}

	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")
	flagCwd := globalFlags.StringP("cwd", "C", "", "Run as if started in `dir`")
	flagConfig := globalFlags.StringP("config", "c", "", "Use specified config `file`")
	flagTestsDir := globalFlags.String("tests-dir", "", "Override fixture root `dir`")

	a := &app{fs: fs.NewReal()}
	commands := newCommands(a)

	if err := globalFlags.Parse(args[1:]); err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	rest := globalFlags.Args()

	if *flagHelp || len(rest) == 0 {
		printUsage(out, globalFlags, commands)

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:     *flagCwd,
		ConfigPath:          *flagConfig,
		TestsDirOverride:    *flagTestsDir,
		HasTestsDirOverride: globalFlags.Changed("tests-dir"),
		Env:                 env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	a.cfg = cfg

	var cmd *Command

	for _, c := range commands {
		if c.Name() == rest[0] {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error: unknown command:", rest[0])
		fprintln(errOut)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	o := NewIO(out, errOut)

	exitCode := cmd.Run(ctx, o, rest[1:])

	if warnCode := o.Finish(); exitCode == 0 {
		exitCode = warnCode
	}

	return exitCode
}

func printUsage(w io.Writer, globalFlags *flag.FlagSet, commands []*Command) {
	fprintln(w, "smilegen - generate JSON fixtures for the Smile codec test suite")
	fprintln(w)
	fprintln(w, "Usage: smilegen [flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")
	fprint(w, globalFlags.FlagUsages())
	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Categories:")

	for _, c := range gen.Categories() {
		fprintln(w, fmt.Sprintf("  %-40s %s", c.Name, c.Short))
	}

	fprintln(w)
	fprintln(w, "Run 'smilegen <command> --help' for more information on a command.")
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func fprint(w io.Writer, a ...any) {
	_, _ = fmt.Fprint(w, a...)
}

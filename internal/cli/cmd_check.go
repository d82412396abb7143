package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/smilegen/internal/emit"
)

// ErrOutOfDate is returned by check when fixtures are missing or stale.
var ErrOutOfDate = errors.New("fixtures out of date, run 'smilegen generate'")

// CheckCmd returns the check command.
func CheckCmd(a *app) *Command {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	flags.String("out-dir", "", "Check `dir` instead of <tests-dir>/<category> (one category only)")

	return &Command{
		Flags: flags,
		Usage: "check [flags] [category...]",
		Short: "Verify fixture files are current",
		Long: "Render the fixtures in memory and compare them with the files on disk.\n" +
			"Fails when a fixture is missing or differs. Unexpected .json files are\n" +
			"reported as warnings. Nothing is written.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			outDir, _ := flags.GetString("out-dir")

			return execCheck(ctx, o, a, args, outDir)
		},
	}
}

func execCheck(ctx context.Context, o *IO, a *app, args []string, outDir string) error {
	cats, err := selectCategories(args, outDir)
	if err != nil {
		return err
	}

	w := emit.NewWriter(a.fs)
	outOfDate := 0

	for _, c := range cats {
		files, err := emit.Render(ctx, c.Fixtures(a.params()), a.encodeOptions())
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}

		dir := a.categoryDir(c, outDir)

		report, err := w.Check(dir, files)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}

		for _, name := range report.Missing {
			o.Println("missing:", filepath.Join(dir, name))
		}

		for _, name := range report.Stale {
			o.Println("stale:", filepath.Join(dir, name))
		}

		for _, name := range report.Extra {
			o.Warn("unexpected fixture "+filepath.Join(dir, name), "remove it or add a generator for it")
		}

		if !report.Clean() {
			outOfDate += len(report.Missing) + len(report.Stale)

			continue
		}

		o.Printf("%s: %d fixtures ok\n", c.Name, len(files))
	}

	if outOfDate > 0 {
		return fmt.Errorf("%w (%d files)", ErrOutOfDate, outOfDate)
	}

	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/smilegen/internal/emit"
)

// lockName is the lock taken in the fixture root for the whole run.
const lockName = "smilegen"

// GenerateCmd returns the generate command.
func GenerateCmd(a *app) *Command {
	flags := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags.String("out-dir", "", "Write into `dir` instead of <tests-dir>/<category> (one category only)")
	flags.BoolP("verbose", "v", false, "Print every written file")

	return &Command{
		Flags: flags,
		Usage: "generate [flags] [category...]",
		Short: "Write fixture files",
		Long: "Write the fixtures of the named categories, or of every category when\n" +
			"none is named, into <tests-dir>/<category>/. Existing files are replaced\n" +
			"atomically; files no generator produces are left alone.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			outDir, _ := flags.GetString("out-dir")
			verbose, _ := flags.GetBool("verbose")

			return execGenerate(ctx, o, a, args, outDir, verbose)
		},
	}
}

func execGenerate(ctx context.Context, o *IO, a *app, args []string, outDir string, verbose bool) (err error) {
	cats, err := selectCategories(args, outDir)
	if err != nil {
		return err
	}

	lockRoot := a.cfg.TestsDirAbs
	if outDir != "" {
		lockRoot = filepath.Dir(a.categoryDir(cats[0], outDir))
	}

	lock, err := a.fs.Lock(filepath.Join(lockRoot, lockName))
	if err != nil {
		return fmt.Errorf("locking %s: %w", lockRoot, err)
	}

	defer func() {
		if closeErr := lock.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("releasing lock: %w", closeErr))
		}
	}()

	w := emit.NewWriter(a.fs)

	for _, c := range cats {
		files, err := emit.Render(ctx, c.Fixtures(a.params()), a.encodeOptions())
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}

		dir := a.categoryDir(c, outDir)

		n, err := w.Write(ctx, dir, files)
		if err != nil {
			return fmt.Errorf("%s: wrote %d of %d: %w", c.Name, n, len(files), err)
		}

		if verbose {
			for _, f := range files {
				o.Println(filepath.Join(dir, f.Name))
			}
		}

		o.Printf("%s: wrote %d fixtures to %s\n", c.Name, n, dir)
	}

	return nil
}

package cli_test

import (
	"bytes"
	"context"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/smilegen/internal/cli"
)

func Test_No_Command_Prints_Usage_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run()

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stderr, ""; got != want {
		t.Errorf("stderr=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stdout, "Usage: smilegen")
	cli.AssertContains(t, stdout, "generate")
	cli.AssertContains(t, stdout, "check")
	cli.AssertContains(t, stdout, "list")
	cli.AssertContains(t, stdout, "print-config")
	cli.AssertContains(t, stdout, "shared_string")
}

func Test_Invalid_Global_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("--invalid-flag", "list")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")
	cli.AssertContains(t, stderr, "Global flags:")
	cli.AssertContains(t, stderr, "--cwd")
	cli.AssertContains(t, stderr, "--config")
	cli.AssertContains(t, stderr, "--tests-dir")
}

func Test_Empty_Tests_Dir_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("--tests-dir=", "list")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "tests-dir cannot be empty")
	cli.AssertContains(t, stderr, "Global flags:")
}

func Test_Unknown_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("frobnicate")

	cli.AssertContains(t, stderr, "unknown command: frobnicate")
	cli.AssertContains(t, stderr, "Commands:")
}

func Test_Command_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("generate", "--help")

	cli.AssertContains(t, stdout, "Usage: smilegen generate")
	cli.AssertContains(t, stdout, "--out-dir")
	cli.AssertContains(t, stdout, "--verbose")
}

func Test_Command_Unknown_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("list", "--nope")

	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "Usage: smilegen list")
}

func Test_Command_Returns_130_When_Cancelled(t *testing.T) {
	t.Parallel()

	cmd := &cli.Command{
		Flags: flag.NewFlagSet("wait", flag.ContinueOnError),
		Usage: "wait",
		Short: "Wait for cancellation",
		Exec: func(ctx context.Context, _ *cli.IO, _ []string) error {
			<-ctx.Done()

			return ctx.Err()
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer

	if got, want := cmd.Run(ctx, cli.NewIO(&out, &errOut), nil), 130; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, errOut.String(), "context canceled")
}

func Test_Warnings_Force_Exit_Code_One(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	o := cli.NewIO(&out, &errOut)
	o.Warn("something odd", "look at it")
	o.Println("result")

	if got, want := o.Finish(), 1; got != want {
		t.Errorf("Finish()=%d, want=%d", got, want)
	}

	if got, want := out.String(), "result\n"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	want := "warning: something odd: look at it\nwarning: something odd: look at it\n"
	if got := errOut.String(); got != want {
		t.Errorf("stderr=%q, want=%q", got, want)
	}
}

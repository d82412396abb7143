package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/smilegen/internal/cli"
)

func Test_Generate_Writes_Float_Fixtures(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("generate", "float")

	cli.AssertContains(t, stdout, "float: wrote 4 fixtures to "+filepath.Join(c.TestsDir(), "float"))

	want := map[string]string{
		"0.0.json":     `{"value": 0.0}`,
		"-0.0.json":    `{"value": -0.0}`,
		"100.25.json":  `{"value": 100.25}`,
		"-100.25.json": `{"value": -100.25}`,
	}

	for name, content := range want {
		if got := c.ReadFixture("float", name); got != content {
			t.Errorf("%s=%q, want=%q", name, got, content)
		}
	}

	entries, err := os.ReadDir(filepath.Join(c.TestsDir(), "float"))
	require.NoError(t, err)

	if got, want := len(entries), 4; got != want {
		t.Errorf("len(entries)=%d, want=%d", got, want)
	}
}

func Test_Generate_Writes_Every_Category_When_None_Named(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("generate")

	for _, category := range []string{
		"integer", "big_integer", "float", "string", "binary", "map", "shared_property", "shared_string",
	} {
		info, err := os.Stat(filepath.Join(c.TestsDir(), category))
		require.NoError(t, err, category)
		require.True(t, info.IsDir(), category)
	}

	if got, want := c.ReadFixture("integer", "-1431655765.json"), `{"value": -1431655765}`; got != want {
		t.Errorf("-1431655765.json=%q, want=%q", got, want)
	}

	if got, want := c.ReadFixture("big_integer", "18446744073709551615.json"), `{"value": 18446744073709551615}`; got != want {
		t.Errorf("18446744073709551615.json=%q, want=%q", got, want)
	}

	if got, want := c.ReadFixture("binary", "1pattern-raw.json"), `{"rawBinary": true, "value": "qg=="}`; got != want {
		t.Errorf("1pattern-raw.json=%q, want=%q", got, want)
	}

	if got, want := c.ReadFixture("map", ".json"), `{"value": {"": 0}}`; got != want {
		t.Errorf(".json=%q, want=%q", got, want)
	}

	if got, want := c.ReadFixture("string", "a😃.json"), `{"value": "a\ud83d\ude03"}`; got != want {
		t.Errorf("a😃.json=%q, want=%q", got, want)
	}
}

func Test_Generate_Is_Idempotent(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("generate", "binary")

	first := c.ReadFixture("binary", "aaa.json")

	c.MustRun("generate", "binary")

	if got := c.ReadFixture("binary", "aaa.json"); got != first {
		t.Errorf("second run=%q, first run=%q", got, first)
	}

	c.MustRun("check", "binary")
}

func Test_Generate_Honors_Out_Dir(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("generate", "big_integer", "--out-dir", "custom")

	data, err := os.ReadFile(filepath.Join(c.Dir, "custom", "0.json"))
	require.NoError(t, err)

	if got, want := string(data), `{"value": 0}`; got != want {
		t.Errorf("0.json=%q, want=%q", got, want)
	}

	if _, err := os.Stat(c.TestsDir()); !os.IsNotExist(err) {
		t.Errorf("tests dir should not exist, stat err=%v", err)
	}
}

func Test_Generate_Out_Dir_Requires_One_Category(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("generate", "--out-dir", "custom", "float", "integer")
	cli.AssertContains(t, stderr, "--out-dir requires exactly one category")

	stderr = c.MustFail("generate", "--out-dir", "custom")
	cli.AssertContains(t, stderr, "--out-dir requires exactly one category")
}

func Test_Generate_Rejects_Unknown_Category(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("generate", "float", "decimal")

	cli.AssertContains(t, stderr, "unknown category: decimal")

	if _, err := os.Stat(filepath.Join(c.TestsDir(), "float")); !os.IsNotExist(err) {
		t.Errorf("nothing should be written, stat err=%v", err)
	}
}

func Test_Generate_Verbose_Lists_Files(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("generate", "-v", "float")

	cli.AssertContains(t, stdout, filepath.Join(c.TestsDir(), "float", "-0.0.json"))
}

func Test_Generate_Uses_Config_File(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".smilegen.json", `{
		// fixtures live next to the codec tests
		"tests_dir": "fixtures",
		"ensure_ascii": false,
		"shared": {"ab_count": 2},
	}`)

	c.MustRun("generate", "shared_property", "string")

	root := filepath.Join(c.Dir, "fixtures")

	data, err := os.ReadFile(filepath.Join(root, "shared_property", "ab.json"))
	require.NoError(t, err)

	if got, want := string(data), `{"sharedProperties": true, "value": [{"a": 0, "b": 1}, {"a": 0, "b": 1}]}`; got != want {
		t.Errorf("ab.json=%q, want=%q", got, want)
	}

	data, err = os.ReadFile(filepath.Join(root, "string", "a😃.json"))
	require.NoError(t, err)

	if got, want := string(data), `{"value": "a😃"}`; got != want {
		t.Errorf("a😃.json=%q, want=%q", got, want)
	}
}

func Test_Generate_Tests_Dir_Flag_Overrides_Config(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".smilegen.json", `{"tests_dir": "fixtures"}`)

	c.MustRun("--tests-dir", "other", "generate", "float")

	if _, err := os.Stat(filepath.Join(c.Dir, "other", "float", "0.0.json")); err != nil {
		t.Errorf("expected fixture under flag dir: %v", err)
	}
}

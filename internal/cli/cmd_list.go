package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFormat is returned for an unsupported --format value.
var ErrInvalidFormat = errors.New("invalid format (valid: text, json, yaml)")

// listing is one category in list output.
type listing struct {
	Category  string   `json:"category"  yaml:"category"`
	Directory string   `json:"directory" yaml:"directory"`
	Files     []string `json:"files"     yaml:"files"`
}

// ListCmd returns the list command.
func ListCmd(a *app) *Command {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	flags.String("format", "text", "Output `format`: text, json or yaml")

	return &Command{
		Flags: flags,
		Usage: "list [flags] [category...]",
		Short: "List the fixture files each category produces",
		Long: "List the fixture file names of the named categories, or of every\n" +
			"category when none is named, in emission order.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			format, _ := flags.GetString("format")

			return execList(o, a, args, format)
		},
	}
}

func execList(o *IO, a *app, args []string, format string) error {
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	cats, err := selectCategories(args, "")
	if err != nil {
		return err
	}

	listings := make([]listing, 0, len(cats))

	for _, c := range cats {
		l := listing{Category: c.Name, Directory: a.categoryDir(c, ""), Files: []string{}}

		for f := range c.Fixtures(a.params()) {
			l.Files = append(l.Files, f.FileName())
		}

		listings = append(listings, l)
	}

	switch format {
	case "json":
		data, err := json.Marshal(listings, jsontext.WithIndent("  "))
		if err != nil {
			return fmt.Errorf("encoding listing: %w", err)
		}

		o.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(listings)
		if err != nil {
			return fmt.Errorf("encoding listing: %w", err)
		}

		o.Printf("%s", data)
	default:
		for _, l := range listings {
			o.Printf("%s (%d files)\n", l.Category, len(l.Files))

			for _, name := range l.Files {
				o.Println("  " + name)
			}
		}
	}

	return nil
}

// Package main provides the gorecord binary: it loads documents into records
// declared in a YAML schema file, validates them and prints their plain form.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/i18n"
	"github.com/reoring/gorecord/schemafile"
)

const (
	Version = "0.1.0"
	appName = "gorecord"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	schemaPath string
	record     string
	strict     bool
	logLevel   string
	lang       string
}

func rootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Validate and compare documents against record schemas",
		Long: `gorecord loads JSON or YAML documents into records declared in a YAML
schema file.

It provides:
- check: load a document, validate it and print its plain form
- equals: compare two documents through a record
- jsonschema: print the JSON Schema of a record
- put/get: store documents in a SQLite database`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&o.schemaPath, "schema", "s", "", "Schema file path (YAML)")
	cmd.PersistentFlags().StringVarP(&o.record, "record", "r", "", "Record name declared in the schema file")
	cmd.PersistentFlags().BoolVar(&o.strict, "strict", false, "Reject duplicate JSON keys and document keys a strict record does not declare")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&o.lang, "lang", "en", "Message language (en, ja)")

	cmd.AddCommand(checkCmd(o), equalsCmd(o), jsonSchemaCmd(o), putCmd(o), getCmd(o))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func (o *options) setup() error {
	level, err := zerolog.ParseLevel(strings.ToLower(o.logLevel))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	gorecord.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger())
	i18n.SetLanguage(o.lang)
	return nil
}

// schema loads the schema file and looks up the selected record.
func (o *options) schema() (*gorecord.Schema, error) {
	if o.schemaPath == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	if o.record == "" {
		return nil, fmt.Errorf("--record is required")
	}
	set, err := schemafile.Load(o.schemaPath)
	if err != nil {
		return nil, err
	}
	s, ok := set.Schema(o.record)
	if !ok {
		return nil, fmt.Errorf("record %s is not declared in %s (have %s)", o.record, o.schemaPath, strings.Join(set.Names(), ", "))
	}
	return s, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/gorecord"
	"github.com/reoring/gorecord/document"
	"github.com/reoring/gorecord/document/sqlitestore"
	"github.com/reoring/gorecord/text"
)

func checkCmd(o *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check <document>",
		Short: "Load a document, validate it and print its plain form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.schema()
			if err != nil {
				return err
			}
			doc, err := o.readRecordDoc(args[0], s)
			if err != nil {
				return err
			}
			r, err := gorecord.LoadNew(s, doc, o.strict)
			if err != nil {
				return err
			}
			if err := r.Check(); err != nil {
				return err
			}
			var out []byte
			switch format {
			case "json":
				out, err = r.ToJSON()
			case "yaml":
				out, err = r.ToYAML()
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "json", "Output format (json, yaml)")
	return cmd
}

func equalsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "equals <document> <other>",
		Short: "Load the first document and compare it with the second",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.schema()
			if err != nil {
				return err
			}
			doc, err := o.readRecordDoc(args[0], s)
			if err != nil {
				return err
			}
			other, err := readDoc(args[1], o.strict)
			if err != nil {
				return err
			}
			r, err := gorecord.LoadNew(s, doc, o.strict)
			if err != nil {
				return err
			}
			eq, err := r.Equals(other)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), eq)
			if !eq {
				return fmt.Errorf("documents differ")
			}
			return nil
		},
	}
}

func jsonSchemaCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the JSON Schema of a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.schema()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(s.JSONSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode json schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

type storeFlags struct {
	dbPath     string
	collection string
}

func (f *storeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dbPath, "db", "gorecord.db", "SQLite database path")
	cmd.Flags().StringVarP(&f.collection, "collection", "c", "", "Collection name (default: record name)")
}

func (f *storeFlags) open(o *options) (*sqlitestore.DB, document.Store, string, error) {
	db, err := sqlitestore.Open(f.dbPath)
	if err != nil {
		return nil, nil, "", err
	}
	collection := f.collection
	if collection == "" {
		collection = o.record
	}
	return db, sqlitestore.NewStore(db), collection, nil
}

func putCmd(o *options) *cobra.Command {
	sf := &storeFlags{}
	cmd := &cobra.Command{
		Use:   "put <document>",
		Short: "Validate a document and store it, printing its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.schema()
			if err != nil {
				return err
			}
			doc, err := o.readRecordDoc(args[0], s)
			if err != nil {
				return err
			}
			db, store, collection, err := sf.open(o)
			if err != nil {
				return err
			}
			defer db.Close()

			d, err := document.New(store, collection, s, nil)
			if err != nil {
				return err
			}
			if err := d.LoadFrom(doc, o.strict); err != nil {
				return err
			}
			if err := d.Save(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.ID())
			return nil
		},
	}
	sf.bind(cmd)
	return cmd
}

func getCmd(o *options) *cobra.Command {
	sf := &storeFlags{}
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Load a stored document and print its plain form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.schema()
			if err != nil {
				return err
			}
			db, store, collection, err := sf.open(o)
			if err != nil {
				return err
			}
			defer db.Close()

			d, err := document.Open(context.Background(), store, collection, s, args[0], o.strict)
			if err != nil {
				return err
			}
			out, err := d.ToJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	sf.bind(cmd)
	return cmd
}

// readDoc decodes a JSON or YAML file (chosen by extension) into a plain tree.
// With unique set, JSON objects repeating a key are rejected.
// readRecordDoc reads a document to be loaded into a record of s. With
// --strict, keys the record does not declare are rejected.
func (o *options) readRecordDoc(path string, s *gorecord.Schema) (any, error) {
	doc, err := readDoc(path, o.strict)
	if err != nil {
		return nil, err
	}
	if o.strict {
		if err := s.CheckKeys(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func readDoc(path string, unique bool) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return text.DecodeYAML(b)
	}
	if unique {
		return text.DecodeJSONUnique(b)
	}
	return text.DecodeJSON(b)
}

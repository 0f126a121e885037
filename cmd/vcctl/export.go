package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openretro/vckit/pkg/vc"
)

var exportOutput string

func init() {
	exportCmd := newExportCmd()
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write manifest to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(newImportCmd())
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <database>",
		Short: "Export a title database as a JSON game-list manifest",
		Long: `The export command writes the editable fields of every record as a
JSON manifest in the stock game-list layout.

Example:
  vcctl export titles.vcdb
  vcctl export titles.vcdb -o games.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	return cmd
}

func runExport(args []string) error {
	path := args[0]
	data, kind, cleanup, err := loadFile(path)
	if err != nil {
		return err
	}
	defer cleanup()
	if kind != kindDatabase {
		return fmt.Errorf("%s: not a title database", path)
	}
	doc, err := vc.ParseDatabase(data, parseOpts())
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	m := vc.ExportManifest(doc)
	if exportOutput == "" {
		return vc.WriteManifest(os.Stdout, m)
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOutput, err)
	}
	defer f.Close()
	if err := vc.WriteManifest(f, m); err != nil {
		return err
	}
	log.WithField("games", len(m.Games)).Infof("exported %s", exportOutput)
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <database> <manifest>",
		Short: "Apply a JSON game-list manifest to a title database",
		Long: `The import command applies the editable fields of a manifest back to
the database, matching entries by record id, and rewrites it in place.

Example:
  vcctl import titles.vcdb games.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args)
		},
	}
	return cmd
}

func runImport(args []string) error {
	path := args[0]
	manifestPath := args[1]

	f, err := os.Open(manifestPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", manifestPath, err)
	}
	m, err := vc.ReadManifest(f)
	f.Close()
	if err != nil {
		return err
	}

	data, kind, cleanup, err := loadFile(path)
	if err != nil {
		return err
	}
	defer cleanup()
	if kind != kindDatabase {
		return fmt.Errorf("%s: not a title database", path)
	}
	doc, err := vc.ParseDatabase(data, parseOpts())
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	s, err := vc.OpenSession(doc)
	if err != nil {
		return err
	}
	if err := vc.ApplyManifest(s, m); err != nil {
		s.Discard()
		return err
	}
	out, err := s.Commit()
	if err != nil {
		return err
	}
	if err := writeFile(path, out); err != nil {
		return err
	}
	log.WithField("games", len(m.Games)).Info("manifest applied")
	return nil
}

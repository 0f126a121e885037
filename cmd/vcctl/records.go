package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openretro/vckit/pkg/vc"
)

var recordsPlatform string

func init() {
	cmd := newRecordsCmd()
	cmd.Flags().StringVar(&recordsPlatform, "platform", "", "Only list records for this platform (GBA, SNES)")
	rootCmd.AddCommand(cmd)
}

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records <database>",
		Short: "List the records of a title database",
		Long: `The records command prints every record in on-disk order.

Example:
  vcctl records titles.vcdb
  vcctl records titles.vcdb --platform SNES --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(args)
		},
	}
	return cmd
}

func runRecords(args []string) error {
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

	type row struct {
		ID        uint32 `json:"id"`
		Platform  string `json:"platform"`
		Title     string `json:"title"`
		Code      string `json:"code"`
		Publisher string `json:"copyright"`
	}
	rows := make([]row, 0, doc.Len())
	for _, id := range doc.RecordIDs() {
		rec := doc.Record(id)
		p := rec.Platform.String()
		if recordsPlatform != "" && p != recordsPlatform {
			continue
		}
		rows = append(rows, row{ID: id, Platform: p, Title: rec.Title, Code: rec.Code, Publisher: rec.Publisher})
	}

	if jsonOut {
		return printJSON(rows)
	}
	printInfo("%-6s %-6s %-32s %-12s %s\n", "ID", "PLAT", "TITLE", "CODE", "COPYRIGHT")
	for _, r := range rows {
		printInfo("%-6d %-6s %-32s %-12s %s\n", r.ID, r.Platform, r.Title, r.Code, r.Publisher)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openretro/vckit/pkg/vc"
)

func init() {
	rootCmd.AddCommand(newSectionsCmd())
}

func newSectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections <sfrom>",
		Short: "List the section table of an SFROM container",
		Long: `The sections command prints every section table entry with its
offset, length, and kind.

Example:
  vcctl sections game.sfrom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(args)
		},
	}
	return cmd
}

func runSections(args []string) error {
	path := args[0]
	data, kind, cleanup, err := loadFile(path)
	if err != nil {
		return err
	}
	defer cleanup()
	if kind != kindSfrom {
		return fmt.Errorf("%s: not an SFROM container", path)
	}
	doc, err := vc.ParseSfrom(data, parseOpts())
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if jsonOut {
		type row struct {
			Offset uint32 `json:"offset"`
			Length uint32 `json:"length"`
			Kind   string `json:"kind"`
		}
		rows := make([]row, 0, len(doc.Sections))
		for _, s := range doc.Sections {
			rows = append(rows, row{Offset: s.Offset, Length: s.Length, Kind: sectionKindName(s.Kind)})
		}
		return printJSON(rows)
	}

	printInfo("%-10s %-10s %s\n", "OFFSET", "LENGTH", "KIND")
	for _, s := range doc.Sections {
		printInfo("%#-10x %-10d %s\n", s.Offset, s.Length, sectionKindName(s.Kind))
	}
	return nil
}

func sectionKindName(k vc.SectionKind) string {
	switch k {
	case vc.SectionROM:
		return "rom"
	case vc.SectionMetadata:
		return "metadata"
	case vc.SectionPCM:
		return "pcm"
	case vc.SectionPCMFooter:
		return "pcm-footer"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(k))
	}
}

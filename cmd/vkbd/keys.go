package main

import (
	"fmt"
	"strconv"

	"example.com/vkbd/pkg/keys"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the key catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			langs := keys.Supported
			if lang != "" {
				l, err := keys.ParseLanguage(lang)
				if err != nil {
					return err
				}
				langs = []keys.Language{l}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), catalogTable(keys.Default(), langs))
			return err
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "only show glyphs for this language")
	return cmd
}

func catalogTable(c *keys.Catalog, langs []keys.Language) string {
	headers := []string{"Row", "Code", "Class", "Size"}
	for _, l := range langs {
		headers = append(headers, string(l), "shift+"+string(l))
	}

	rows := make([][]string, 0, len(c.All()))
	for _, d := range c.All() {
		row := []string{strconv.Itoa(d.Row + 1), string(d.Code), d.Class.String(), d.Size.String()}
		for _, l := range langs {
			lower, _ := keys.GlyphFor(d, l, false)
			upper, _ := keys.GlyphFor(d, l, true)
			row = append(row, lower, upper)
		}
		rows = append(rows, row)
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.String()
}

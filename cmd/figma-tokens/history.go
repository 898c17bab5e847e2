package main

import (
	"fmt"

	"github.com/kataras/figma-tokens/pkg/formatter"
	"github.com/kataras/figma-tokens/pkg/store"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit    int
		markdown bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the recorded changelog of a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fileKey, err := fileKeyFromFlags()
			if err != nil {
				return err
			}

			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			h, err := db.History(cmd.Context(), fileKey, limit)
			if err != nil {
				return err
			}
			if markdown {
				fmt.Print(formatter.ChangelogMarkdown(h))
				return nil
			}
			if len(h) == 0 {
				fmt.Println("No changes recorded.")
				return nil
			}

			cyan := color.New(color.FgCyan)
			for _, r := range h {
				cyan.Printf("%-22s", humanize.Time(r.Timestamp))
				fmt.Printf(" %s change(s)", humanize.Comma(int64(r.Len())))
				if r.Design != nil {
					fmt.Printf("  colors %d, typography %d", len(r.Design.Colors), len(r.Design.Typography))
				}
				if r.Assets != nil {
					fmt.Printf("  icons %d, logos %d", len(r.Assets.Icons), len(r.Assets.Logos))
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of records (0 = all)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the full records as markdown")
	return cmd
}

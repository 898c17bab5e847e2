package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	figmatokens "github.com/kataras/figma-tokens"
	"github.com/kataras/figma-tokens/pkg/changelog"
	"github.com/kataras/figma-tokens/pkg/formatter"

	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff OLD.json NEW.json",
		Short: "Print the changelog between two extract outputs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := readResult(args[0])
			if err != nil {
				return err
			}
			next, err := readResult(args[1])
			if err != nil {
				return err
			}

			prevSnap := prev.Snapshot()
			record := changelog.BuildRecord(&prevSnap, next.Snapshot(), time.Now())
			if record == nil {
				fmt.Println("No changes.")
				return nil
			}
			fmt.Print(formatter.ChangelogMarkdown(changelog.History{*record}))
			return nil
		},
	}
}

func readResult(path string) (*figmatokens.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r figmatokens.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if r.Design == nil {
		return nil, fmt.Errorf("%s: not an extract output", path)
	}
	return &r, nil
}

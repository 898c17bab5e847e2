package main

import (
	"fmt"
	"os"

	figmatokens "github.com/kataras/figma-tokens"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = figmatokens.Version

var (
	figmaURL    string
	accessToken string
	dbPath      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "figma-tokens",
		Short:         "Extract versioned design tokens from Figma files",
		Long:          "A tool to extract component tokens, styles and assets from Figma files via the Figma API and keep a changelog between runs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&figmaURL, "url", "u", "", "Figma file URL or key (env FIGMA_URL)")
	rootCmd.PersistentFlags().StringVarP(&accessToken, "token", "t", "", "Figma Personal Access Token (env FIGMA_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "figma-tokens.db", "SQLite snapshot database")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-tokens version %s\n", version)
		},
	}

	rootCmd.AddCommand(newExtractCmd(), newDiffCmd(), newHistoryCmd(), versionCmd)

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveURL and resolveToken prefer the flag and fall back to the environment.
func resolveURL() (string, error) {
	if figmaURL != "" {
		return figmaURL, nil
	}
	if v := os.Getenv("FIGMA_URL"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("missing Figma file: use --url or set FIGMA_URL")
}

func resolveToken() (string, error) {
	if accessToken != "" {
		return accessToken, nil
	}
	if v := os.Getenv("FIGMA_TOKEN"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("missing access token: use --token or set FIGMA_TOKEN")
}

// cliLogger implements figmatokens.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgext-dev/pgext-sdk/manifest"
)

var rootCmd = &cobra.Command{
	Use:   "pgextgen",
	Short: "Generate install artifacts for a Go extension module",
	Long: `pgextgen reads an extension manifest (JSON or YAML) and emits the
artifacts the backend needs to install the module: the CREATE FUNCTION
script, the .control file, and the manifest's own JSON schema.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("manifest", "m", "extension.json", "Path to the extension manifest")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Write output to file instead of stdout")
}

// loadManifest reads and validates the manifest named by the persistent
// flag, choosing the parser by file extension.
func loadManifest(cmd *cobra.Command) (*manifest.Manifest, error) {
	path, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return manifest.ParseYAML(data)
	default:
		return manifest.Parse(data)
	}
}

// emit writes content to the output flag target, or stdout.
func emit(cmd *cobra.Command, content string) error {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Print(content)
		return nil
	}
	return os.WriteFile(out, []byte(content), 0o644)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/pgext-dev/pgext-sdk/ddl"
	"github.com/pgext-dev/pgext-sdk/manifest"
)

var ddlCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Emit the CREATE FUNCTION install script",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManifest(cmd)
		if err != nil {
			return err
		}
		sql, err := ddl.Statements(m)
		if err != nil {
			return err
		}
		return emit(cmd, sql)
	},
}

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Emit the extension .control file",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManifest(cmd)
		if err != nil {
			return err
		}
		body, err := ddl.ControlFile(m)
		if err != nil {
			return err
		}
		return emit(cmd, body)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Emit the JSON schema for manifest files",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := manifest.Schema()
		if err != nil {
			return err
		}
		return emit(cmd, string(out)+"\n")
	},
}

func init() {
	rootCmd.AddCommand(ddlCmd)
	rootCmd.AddCommand(controlCmd)
	rootCmd.AddCommand(schemaCmd)
}

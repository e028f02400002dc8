package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var printSchemaName string

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the assembled SDL of one schema (default schema if unnamed)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, _, err := loadRegistry()
		if err != nil {
			return err
		}

		schema, err := reg.Schemas.Resolve(printSchemaName)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), schema.Source())
		return nil
	},
}

func init() {
	printCmd.Flags().StringVar(&printSchemaName, "schema", "", "Schema name (default: the configured default schema)")
	rootCmd.AddCommand(printCmd)
}

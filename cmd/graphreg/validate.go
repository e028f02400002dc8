package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Build every schema in the configuration and report errors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, rules, err := loadRegistry()
		if err != nil {
			return err
		}

		failed := false
		for _, name := range reg.Schemas.Names() {
			schema, err := reg.Schemas.Resolve(name)
			if err != nil {
				failed = true
				fmt.Fprintf(cmd.ErrOrStderr(), "schema %s: %v\n", name, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema %s: ok (%d queries, %d mutations)\n",
				name, len(schema.ListQueries()), len(schema.ListMutations()))
		}

		if def := reg.Schemas.DefaultSchema(); !reg.Schemas.Has(def) {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "default schema %q is not registered\n", def)
		}

		if rules.MaxDepth() > 0 || rules.MaxComplexity() > 0 || rules.IntrospectionDisabled() {
			fmt.Fprintf(cmd.OutOrStdout(), "security: maxComplexity=%d maxDepth=%d introspectionDisabled=%t\n",
				rules.MaxComplexity(), rules.MaxDepth(), rules.IntrospectionDisabled())
		}

		if failed {
			return errors.New("configuration is not valid")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

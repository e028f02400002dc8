package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphreg/graphreg/pkg/config"
	"github.com/graphreg/graphreg/pkg/registry"
	"github.com/graphreg/graphreg/pkg/security"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "graphreg",
	Short:   "Inspect and validate GraphQL registry configurations",
	Version: Version + " (" + Commit + ")",
	Long: `graphreg loads a registry configuration file, builds the schemas it
declares, and reports on the result. It never serves traffic; use it to
check configurations before deploying them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "graphreg.yaml", "Registry configuration file")
}

// loadRegistry applies the configured file to a fresh registry.
func loadRegistry() (*registry.Registry, *security.Rules, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	reg := registry.New()
	rules := security.NewRules()
	if err := cfg.Apply(reg, rules); err != nil {
		return nil, nil, fmt.Errorf("failed to apply configuration: %w", err)
	}
	return reg, rules, nil
}

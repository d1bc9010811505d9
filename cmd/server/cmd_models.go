package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skufu/GlucoRisk/internal/logging"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Load every artifact and list what was loaded",
	RunE:  runModels,
}

func runModels(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	store, pool, err := openStore(cmd.Context(), cfg, logging.New("artifact"))
	if err != nil {
		return err
	}
	defer closePool(pool)

	t := newTable()
	t.AppendHeader([]any{"Model", "Artifact", "Kind", "Features"})
	for _, info := range store.Info() {
		model := string(info.Key)
		if model == "" {
			model = "(scaler)"
		}
		t.AppendRow([]any{model, info.Name, string(info.Kind), info.Features})
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

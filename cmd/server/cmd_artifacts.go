package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skufu/GlucoRisk/internal/artifact"
	"github.com/Skufu/GlucoRisk/internal/database"
	"github.com/Skufu/GlucoRisk/internal/logging"
	"github.com/Skufu/GlucoRisk/internal/model"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Manage artifacts stored in Postgres",
}

var artifactsPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the local artifact directory to the model_artifacts table",
	RunE:  runArtifactsPush,
}

func init() {
	artifactsCmd.AddCommand(artifactsPushCmd)
}

func runArtifactsPush(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required to push artifacts")
	}
	logger := logging.New("artifact")
	ctx := cmd.Context()

	manifest, err := artifact.LoadManifest(cfg.ManifestPath)
	if err != nil {
		return err
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	dst := artifact.NewPGSource(pool)
	if err := dst.Migrate(ctx); err != nil {
		return err
	}

	src := artifact.DirSource{Root: cfg.ArtifactDir}
	for _, name := range manifest.Names() {
		data, err := src.Read(ctx, name)
		if err != nil {
			return err
		}
		// refuse to publish anything the server would fail to load
		if _, err := model.Decode(data); err != nil {
			return &artifact.Error{Name: name, Op: "decode", Err: err}
		}
		if err := dst.Push(ctx, name, data); err != nil {
			return err
		}
		logger.Info("artifact pushed", "name", name, "bytes", len(data))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "pushed %d artifacts\n", len(manifest.Names()))
	return nil
}

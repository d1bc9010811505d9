package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skufu/GlucoRisk/internal/artifact"
	"github.com/Skufu/GlucoRisk/internal/logging"
	"github.com/Skufu/GlucoRisk/internal/patient"
	"github.com/Skufu/GlucoRisk/internal/predict"
)

var predictFlags struct {
	input patient.Input
	model string
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict diabetes risk for one patient",
	RunE:  runPredict,
}

func init() {
	in := &predictFlags.input
	f := predictCmd.Flags()
	f.StringVar(&in.Gender, "gender", "", "Male, Female or Other (required)")
	f.IntVar(&in.Age, "age", 0, "Age in years, 0-120 (required)")
	f.StringVar(&in.Hypertension, "hypertension", "No", "Yes or No")
	f.StringVar(&in.HeartDisease, "heart-disease", "No", "Yes or No")
	f.StringVar(&in.SmokingHistory, "smoking-history", "No Info", "No Info, Never, Former, Current or Ever")
	f.Float64Var(&in.BMI, "bmi", 0, "Body mass index, 10.0-80.0 (required)")
	f.Float64Var(&in.HbA1cLevel, "hba1c", 0, "HbA1c level, 0.0-20.0 (required)")
	f.IntVar(&in.BloodGlucoseLevel, "glucose", 0, "Blood glucose level, 0-500 (required)")
	f.StringVar(&predictFlags.model, "model", string(artifact.LogisticRegression), "Model name or alias (lr, dt, knn, nb, svc)")

	_ = predictCmd.MarkFlagRequired("gender")
	_ = predictCmd.MarkFlagRequired("age")
	_ = predictCmd.MarkFlagRequired("bmi")
	_ = predictCmd.MarkFlagRequired("hba1c")
	_ = predictCmd.MarkFlagRequired("glucose")
}

func runPredict(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	key, err := artifact.ParseModelKey(predictFlags.model)
	if err != nil {
		return err
	}

	store, pool, err := openStore(cmd.Context(), cfg, logging.New("artifact"))
	if err != nil {
		return err
	}
	defer closePool(pool)

	out, err := predict.NewService(store, logging.New("predict")).Run(predictFlags.input, key)
	var verr *patient.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s (%w)", patient.UserMessage, err)
	}
	if err != nil {
		return err
	}

	t := newTable()
	t.AppendHeader([]any{"Feature", "Encoded"})
	for i, name := range patient.FeatureNames {
		t.AppendRow([]any{name, out.Features[i]})
	}
	t.AppendFooter([]any{string(out.Model), out.Label})
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

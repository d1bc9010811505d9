// glucorisk serves the diabetes risk form and runs one-off predictions
// against the fitted scaler and classifiers.
//
// Usage:
//
//	glucorisk [serve]
//	glucorisk predict --gender=Male --age=45 ... --model="Logistic Regression"
//	glucorisk models
//	glucorisk artifacts push
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "glucorisk",
	Short: "Diabetes risk prediction from patient attributes",
	Long:  "GlucoRisk encodes patient attributes, scales them with a fitted scaler\nand classifies them with one of five pre-trained models.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(artifactsCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

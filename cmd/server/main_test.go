package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ARTIFACT_DIR", "../../models")
	t.Setenv("ARTIFACT_SOURCE", "dir")
	t.Setenv("ENABLE_DB", "false")
	t.Setenv("LOG_LEVEL", "error")

	// flag values and Changed marks outlive a single Execute
	predictCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset --%s: %v", f.Name, err)
		}
		f.Changed = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPredictCommand_Scenario(t *testing.T) {
	out, err := execute(t, "predict",
		"--gender=Male", "--age=45", "--hypertension=No", "--heart-disease=No",
		"--smoking-history=Never", "--bmi=28.5", "--hba1c=6.1", "--glucose=140",
		"--model=Logistic Regression")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	for _, want := range []string{"HbA1c_level", "6.1", "LOGISTIC REGRESSION"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPredictCommand_OtherGender(t *testing.T) {
	_, err := execute(t, "predict",
		"--gender=Other", "--age=30", "--smoking-history=Never",
		"--bmi=22", "--hba1c=5", "--glucose=100", "--model=nb")
	if err == nil || !strings.Contains(err.Error(), "Please fill in all fields with valid input") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPredictCommand_RequiredFlags(t *testing.T) {
	full := []string{"--gender=Male", "--age=45", "--bmi=28.5", "--hba1c=6.1", "--glucose=140"}
	if _, err := execute(t, append([]string{"predict"}, full...)...); err != nil {
		t.Fatalf("complete flags: %v", err)
	}

	for i, flag := range full {
		name := strings.TrimPrefix(strings.SplitN(flag, "=", 2)[0], "--")
		t.Run(name, func(t *testing.T) {
			args := []string{"predict"}
			args = append(args, full[:i]...)
			args = append(args, full[i+1:]...)
			_, err := execute(t, args...)
			if err == nil || !strings.Contains(err.Error(), name) {
				t.Fatalf("expected required flag error for %s, got %v", name, err)
			}
		})
	}
}

func TestPredictCommand_FlagsDoNotLeak(t *testing.T) {
	if _, err := execute(t, "predict", "--gender=Female", "--age=62", "--smoking-history=Current",
		"--bmi=34", "--hba1c=8.2", "--glucose=260"); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if _, err := execute(t, "models"); err != nil {
		t.Fatalf("models: %v", err)
	}
	if got := predictFlags.input.SmokingHistory; got != "No Info" {
		t.Errorf("smoking history carried over: %q", got)
	}
	if got := predictFlags.input.Age; got != 0 {
		t.Errorf("age carried over: %d", got)
	}
}

func TestPredictCommand_UnknownModel(t *testing.T) {
	_, err := execute(t, "predict",
		"--gender=Male", "--age=30", "--bmi=22", "--hba1c=5", "--glucose=100", "--model=Random Forest")
	if err == nil || !strings.Contains(err.Error(), "unknown model") {
		t.Fatalf("expected unknown model error, got %v", err)
	}
}

func TestModelsCommand(t *testing.T) {
	out, err := execute(t, "models")
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	for _, want := range []string{"(scaler)", "standard_scaler.json", "Support Vector Classifier", "k_neighbors"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestArtifactsPushRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := execute(t, "artifacts", "push"); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

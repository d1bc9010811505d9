// Package patient turns submitted form values into the numeric feature
// vector the fitted scaler and classifiers were trained on.
package patient

import (
	"fmt"
	"math"
	"strings"
)

// NumFeatures is the width of every encoded vector.
const NumFeatures = 8

// FeatureNames is the fit-time column order of the scaler and classifiers.
var FeatureNames = [NumFeatures]string{
	"gender",
	"age",
	"hypertension",
	"heart_disease",
	"smoking_history",
	"bmi",
	"HbA1c_level",
	"blood_glucose_level",
}

// Form options, in the order the page presents them.
var (
	Genders        = []string{"Male", "Female", "Other"}
	YesNo          = []string{"No", "Yes"}
	SmokingHistory = []string{"No Info", "Never", "Former", "Current", "Ever"}
)

// Input is one form submission.
type Input struct {
	Gender            string  `json:"gender"`
	Age               int     `json:"age"`
	Hypertension      string  `json:"hypertension"`
	HeartDisease      string  `json:"heart_disease"`
	SmokingHistory    string  `json:"smoking_history"`
	BMI               float64 `json:"bmi"`
	HbA1cLevel        float64 `json:"HbA1c_level"`
	BloodGlucoseLevel int     `json:"blood_glucose_level"`
}

// Vector is an encoded Input in FeatureNames order. Missing values are NaN.
type Vector [NumFeatures]float64

// Missing returns the sentinel stored for values that have no encoding.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether f cannot be fed to the scaler.
func IsMissing(f float64) bool { return math.IsNaN(f) || math.IsInf(f, 0) }

// EncodeGender maps Male to 1 and Female to 0. Anything else is missing.
func EncodeGender(s string) float64 {
	switch normalize(s) {
	case "male":
		return 1
	case "female":
		return 0
	default:
		return Missing()
	}
}

// EncodeYesNo maps Yes to 1 and No to 0. Anything else is missing.
func EncodeYesNo(s string) float64 {
	switch normalize(s) {
	case "yes":
		return 1
	case "no":
		return 0
	default:
		return Missing()
	}
}

// EncodeSmokingHistory maps Never to 0, Former to 1, Current and Ever to 2
// and No Info to -1. No Info is a known category, not a missing value.
func EncodeSmokingHistory(s string) float64 {
	switch normalize(s) {
	case "never":
		return 0
	case "former":
		return 1
	case "current", "ever":
		return 2
	case "no info":
		return -1
	default:
		return Missing()
	}
}

// Encode builds the feature vector for in. It never fails; unmapped
// categoricals surface as missing values for Validate to reject.
func Encode(in Input) Vector {
	return Vector{
		EncodeGender(in.Gender),
		float64(in.Age),
		EncodeYesNo(in.Hypertension),
		EncodeYesNo(in.HeartDisease),
		EncodeSmokingHistory(in.SmokingHistory),
		in.BMI,
		in.HbA1cLevel,
		float64(in.BloodGlucoseLevel),
	}
}

// UserMessage is shown on the form whenever a submission is rejected.
const UserMessage = "Please fill in all fields with valid input"

// ValidationError reports fields that keep a submission from reaching the model.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

// Validate rejects vectors holding a missing or non-finite value.
func Validate(v Vector) error {
	var fields []string
	for i, f := range v {
		if IsMissing(f) {
			fields = append(fields, FeatureNames[i])
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields, Reason: "missing or unmapped value"}
	}
	return nil
}

type bounds struct {
	name     string
	min, max float64
}

var numericBounds = []bounds{
	{"age", 0, 120},
	{"bmi", 10, 80},
	{"HbA1c_level", 0, 20},
	{"blood_glucose_level", 0, 500},
}

// CheckRanges rejects numeric fields outside the limits the form enforces.
func CheckRanges(in Input) error {
	values := []float64{float64(in.Age), in.BMI, in.HbA1cLevel, float64(in.BloodGlucoseLevel)}

	var fields []string
	for i, b := range numericBounds {
		v := values[i]
		if IsMissing(v) {
			continue // reported by Validate
		}
		if v < b.min || v > b.max {
			fields = append(fields, b.name)
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields, Reason: "value out of range"}
	}
	return nil
}

// OneOf reports whether s names one of options under the encoders' matching rule.
func OneOf(options []string, s string) bool {
	for _, opt := range options {
		if normalize(opt) == normalize(s) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

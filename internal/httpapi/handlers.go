package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Skufu/GlucoRisk/internal/artifact"
	"github.com/Skufu/GlucoRisk/internal/patient"
	"github.com/Skufu/GlucoRisk/internal/predict"
)

// PatientForm is the wire shape of a submission, shared by the HTML form and
// the JSON API. Pointers distinguish a missing JSON number from zero. Form
// posts bind "" as zero, so Submit rejects blank numbers before binding.
type PatientForm struct {
	Gender            string   `form:"gender" json:"gender" binding:"required,option=gender"`
	Age               *int     `form:"age" json:"age" binding:"required,min=0,max=120"`
	Hypertension      string   `form:"hypertension" json:"hypertension" binding:"required,option=yesno"`
	HeartDisease      string   `form:"heart_disease" json:"heart_disease" binding:"required,option=yesno"`
	SmokingHistory    string   `form:"smoking_history" json:"smoking_history" binding:"required,option=smoking"`
	BMI               *float64 `form:"bmi" json:"bmi" binding:"required,min=10,max=80"`
	HbA1cLevel        *float64 `form:"HbA1c_level" json:"HbA1c_level" binding:"required,min=0,max=20"`
	BloodGlucoseLevel *int     `form:"blood_glucose_level" json:"blood_glucose_level" binding:"required,min=0,max=500"`
	Model             string   `form:"model" json:"model" binding:"required"`
}

var optionLists = map[string][]string{
	"gender":  patient.Genders,
	"yesno":   patient.YesNo,
	"smoking": patient.SmokingHistory,
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("option", validOption); err != nil {
			panic(err)
		}
	}
}

// validOption accepts a categorical value the way the encoders match it.
func validOption(fl validator.FieldLevel) bool {
	options, ok := optionLists[fl.Param()]
	return ok && patient.OneOf(options, fl.Field().String())
}

var numericFields = []string{"age", "bmi", "HbA1c_level", "blood_glucose_level"}

func blankNumbers(c *gin.Context) []string {
	var blank []string
	for _, k := range numericFields {
		if strings.TrimSpace(c.PostForm(k)) == "" {
			blank = append(blank, k)
		}
	}
	return blank
}

// Input converts a bound form. Call only after binding succeeded.
func (f PatientForm) Input() patient.Input {
	return patient.Input{
		Gender:            f.Gender,
		Age:               *f.Age,
		Hypertension:      f.Hypertension,
		HeartDisease:      f.HeartDisease,
		SmokingHistory:    f.SmokingHistory,
		BMI:               *f.BMI,
		HbA1cLevel:        *f.HbA1cLevel,
		BloodGlucoseLevel: *f.BloodGlucoseLevel,
	}
}

type Handler struct {
	service *predict.Service
	models  []artifact.ModelKey
	db      HealthChecker
	logger  *slog.Logger
}

// NewHandler builds the request handlers. db may be nil when no database is configured.
func NewHandler(service *predict.Service, models []artifact.ModelKey, db HealthChecker, logger *slog.Logger) *Handler {
	return &Handler{service: service, models: models, db: db, logger: logger}
}

type formValues struct {
	Gender            string
	Age               string
	Hypertension      string
	HeartDisease      string
	SmokingHistory    string
	BMI               string
	HbA1cLevel        string
	BloodGlucoseLevel string
	Model             string
}

type pageView struct {
	Genders []string
	YesNo   []string
	Smoking []string
	Models  []string
	Form    formValues
	Result  *predict.Outcome
	Error   string
}

func (h *Handler) page(form formValues) pageView {
	models := make([]string, len(h.models))
	for i, k := range h.models {
		models[i] = string(k)
	}
	return pageView{
		Genders: patient.Genders,
		YesNo:   patient.YesNo,
		Smoking: patient.SmokingHistory,
		Models:  models,
		Form:    form,
	}
}

func (h *Handler) defaultForm() formValues {
	form := formValues{
		Gender:            patient.Genders[0],
		Age:               "0",
		Hypertension:      "No",
		HeartDisease:      "No",
		SmokingHistory:    patient.SmokingHistory[0],
		BMI:               "10.0",
		HbA1cLevel:        "0.0",
		BloodGlucoseLevel: "0",
	}
	if len(h.models) > 0 {
		form.Model = string(h.models[0])
	}
	return form
}

// Index renders the empty form.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.page(h.defaultForm()))
}

// Submit handles the form post and re-renders the page with the label or an inline error.
func (h *Handler) Submit(c *gin.Context) {
	view := h.page(formValues{
		Gender:            c.PostForm("gender"),
		Age:               c.PostForm("age"),
		Hypertension:      c.PostForm("hypertension"),
		HeartDisease:      c.PostForm("heart_disease"),
		SmokingHistory:    c.PostForm("smoking_history"),
		BMI:               c.PostForm("bmi"),
		HbA1cLevel:        c.PostForm("HbA1c_level"),
		BloodGlucoseLevel: c.PostForm("blood_glucose_level"),
		Model:             c.PostForm("model"),
	})

	if blank := blankNumbers(c); len(blank) > 0 {
		h.logger.Info("form rejected", "request_id", c.GetString("request_id"), "blank", blank)
		view.Error = patient.UserMessage
		c.HTML(http.StatusUnprocessableEntity, "index.html", view)
		return
	}

	var form PatientForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Info("form rejected", "request_id", c.GetString("request_id"), "error", err)
		view.Error = patient.UserMessage
		c.HTML(http.StatusUnprocessableEntity, "index.html", view)
		return
	}

	key, err := artifact.ParseModelKey(form.Model)
	if err != nil {
		view.Error = fmt.Sprintf("Unknown model %q", form.Model)
		c.HTML(http.StatusBadRequest, "index.html", view)
		return
	}

	out, err := h.service.Run(form.Input(), key)
	if err != nil {
		status, msg := classify(err)
		view.Error = msg
		c.HTML(status, "index.html", view)
		return
	}

	view.Result = &out
	c.HTML(http.StatusOK, "index.html", view)
}

// Predict is the JSON counterpart of Submit.
func (h *Handler) Predict(c *gin.Context) {
	var form PatientForm
	if err := c.ShouldBindJSON(&form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation_failed",
				"message": patient.UserMessage,
				"details": fieldErrors(verrs),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	key, err := artifact.ParseModelKey(form.Model)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown model", "details": err.Error()})
		return
	}

	out, err := h.service.Run(form.Input(), key)
	if err != nil {
		status, msg := classify(err)
		body := gin.H{"error": "prediction failed", "details": err.Error()}
		if status == http.StatusUnprocessableEntity {
			body = gin.H{"error": "validation_failed", "message": msg, "details": err.Error()}
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, out)
}

// Models lists the selectable model keys.
func (h *Handler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.models})
}

// classify maps a service error to a status code and user-facing message.
func classify(err error) (int, string) {
	var verr *patient.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, patient.UserMessage
	}
	if errors.Is(err, artifact.ErrUnknownModel) {
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "Prediction failed: " + err.Error()
}

func fieldErrors(verrs validator.ValidationErrors) []string {
	out := make([]string, len(verrs))
	for i, fe := range verrs {
		out[i] = fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
	return out
}

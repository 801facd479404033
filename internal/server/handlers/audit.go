package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/core"
)

// AuditRunner is the engine surface the handler needs.
type AuditRunner interface {
	Run(ctx context.Context, input core.AuditInput) core.AuditResponse
}

// AuditHandler serves POST /api/audit. Runs are synchronous; the write
// timeout on the server must cover a full probe cycle.
type AuditHandler struct {
	Engine   AuditRunner
	Validate *validator.Validate
	Logger   *zap.Logger
}

// NewAuditHandler builds a handler with a JSON-tag-aware validator.
func NewAuditHandler(engine AuditRunner, logger *zap.Logger) *AuditHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditHandler{Engine: engine, Validate: v, Logger: logger}
}

// ServeHTTP decodes, validates, and runs one audit.
func (h *AuditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var input core.AuditInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid JSON body",
		})
		return
	}

	if err := h.Validate.Struct(&input); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
		return
	}

	response := h.Engine.Run(r.Context(), input)
	writeJSON(w, http.StatusOK, response)
}

// validationErrors maps validator output to the field-keyed shape the
// API promises.
func validationErrors(err error) map[string][]string {
	out := map[string][]string{}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		out["input"] = []string{err.Error()}
		return out
	}

	for _, fe := range fieldErrors {
		field := fe.Field()
		out[field] = append(out[field], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must have at least %s entries.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

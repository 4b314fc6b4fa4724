// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pantry-it/backend/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	inventory *service.InventoryService
	logger    *slog.Logger
	validate  *validator.Validate
	version   string
	started   time.Time
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(inventory *service.InventoryService, logger *slog.Logger, version string) *Handler {
	return &Handler{
		inventory: inventory,
		logger:    logger,
		validate:  newValidator(),
		version:   version,
		started:   time.Now(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names in messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrorResponse is the body of every non-2xx response. Code is one of the
// service error codes and lets clients rebuild the typed error.
type ErrorResponse struct {
	Error string `json:"error" example:"an item named \"Milk\" already exists"`
	Code  string `json:"code" example:"duplicate_name"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

var statusByCode = map[string]int{
	service.CodeValidation:         http.StatusBadRequest,
	service.CodeDuplicateName:      http.StatusConflict,
	service.CodeProtectedEntity:    http.StatusForbidden,
	service.CodeNotFound:           http.StatusNotFound,
	service.CodeInvariantViolation: http.StatusInternalServerError,
	service.CodeStorage:            http.StatusInternalServerError,
}

// handleServiceError writes the response for a service error. Returns true if
// an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	code := service.Code(err)
	status := statusByCode[code]
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		h.logger.Error("service error", "error", err, "code", code)
		if code == service.CodeStorage {
			msg = "internal error"
		}
	}
	respondError(w, status, code, msg)
	return true
}

// validatable is implemented by request types with checks that struct tags
// cannot express.
type validatable interface {
	Validate() error
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, service.CodeValidation, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// decodeAndValidate decodes the body into v, then runs the struct tag rules
// and v.Validate if present.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		respondError(w, http.StatusBadRequest, service.CodeValidation, validationMessage(err))
		return false
	}
	if vv, ok := v.(validatable); ok {
		if err := vv.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, service.CodeValidation, err.Error())
			return false
		}
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s check", fe.Field(), fe.Tag())
	}
}

// pathID parses a positive integer path parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, service.CodeValidation, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

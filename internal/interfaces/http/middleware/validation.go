package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/interfaces/http/dto"
)

// SetupValidator makes gin's validator report JSON (or form) field names and
// registers the dusun tag
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("dusun", validateDusun)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		}
		return name
	}
	return ""
}

// validateDusun accepts a dusun code or label
func validateDusun(fl validator.FieldLevel) bool {
	_, err := shared.ParseDusun(fl.Field().String())
	return err == nil
}

// FormatValidationErrors lists every failed field, or reports a malformed
// body when err is not a validation error
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: validationMessage(e),
				Tag:     e.Tag(),
			})
		}
		return dto.NewValidationErrorResponse("Data yang dikirim tidak valid", requestID, details)
	}
	return dto.NewValidationErrorResponse("Format permintaan tidak valid", requestID, nil)
}

// HandleValidationError answers 400 with FormatValidationErrors
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString(RequestIDKey)))
}

// fieldMessages renders one failed rule in Indonesian. Tags without an
// entry fall back to "<field> tidak valid".
var fieldMessages = map[string]func(field, param string, isText bool) string{
	"required": func(f, _ string, _ bool) string { return f + " wajib diisi" },
	"email":    func(string, string, bool) string { return "Format email tidak valid" },
	"url":      func(string, string, bool) string { return "Format URL tidak valid" },
	"dusun":    func(string, string, bool) string { return "Dusun tidak valid" },
	"uuid":     func(f, _ string, _ bool) string { return f + " harus berupa UUID" },
	"len":      func(f, p string, _ bool) string { return f + " harus " + p + " karakter" },
	"oneof":    func(f, p string, _ bool) string { return f + " harus salah satu dari: " + p },
	"gte":      func(f, p string, _ bool) string { return f + " tidak boleh kurang dari " + p },
	"lte":      func(f, p string, _ bool) string { return f + " tidak boleh lebih dari " + p },
	"gt":       func(f, p string, _ bool) string { return f + " harus lebih dari " + p },
	"lt":       func(f, p string, _ bool) string { return f + " harus kurang dari " + p },
	"eqfield":  func(f, p string, _ bool) string { return f + " harus sama dengan " + p },
	"min":      func(f, p string, text bool) string { return f + " minimal " + p + characters(text) },
	"max":      func(f, p string, text bool) string { return f + " maksimal " + p + characters(text) },
}

func characters(isText bool) string {
	if isText {
		return " karakter"
	}
	return ""
}

func validationMessage(e validator.FieldError) string {
	if render, ok := fieldMessages[e.Tag()]; ok {
		return render(e.Field(), e.Param(), e.Kind() == reflect.String)
	}
	return e.Field() + " tidak valid"
}

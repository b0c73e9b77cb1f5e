package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/waste3d/vod-platform/internal/domain"
)

var (
	translator     ut.Translator
	setupValidator sync.Once
)

// initValidator switches gin's validator to JSON field names and English messages.
func initValidator() {
	setupValidator.Do(func() {
		_en := en.New()
		translator, _ = ut.New(_en, _en).GetTranslator("en")

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, translator)
	})
}

// fieldErrors flattens validator errors into {field: message}.
func fieldErrors(err error) (map[string]string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		if translator != nil {
			out[fe.Field()] = fe.Translate(translator)
		} else {
			out[fe.Field()] = fe.Error()
		}
	}
	return out, true
}

// statusFor maps domain errors to HTTP statuses. A missing grant is reported as
// not found unless revealForbidden is set.
func statusFor(err error, revealForbidden bool) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		if revealForbidden {
			return http.StatusForbidden
		}
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRestricted):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// badRequest answers a failed bind.
func badRequest(c *gin.Context, err error) {
	if fields, ok := fieldErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

// failJSON answers a use case error. Server errors are recorded on the context and
// replaced by a generic message.
func failJSON(c *gin.Context, err error) {
	status := statusFor(err, false)
	switch status {
	case http.StatusInternalServerError:
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": http.StatusText(status)})
	case http.StatusNotFound:
		c.JSON(status, gin.H{"error": "Not found"})
	default:
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// Package validate provides a singleton go-playground validator with english
// translations, used for job options and row-level dataset checks
package validate

import (
	"reflect"
	"strings"
	"sync"

	perr "frameset/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// Svc holds a singleton validator and translator
type Svc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *Svc
)

// Init initializes the singleton validator with english translations and csv/json tag names
func Init() *Svc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer csv tag names in messages, then json
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("csv")
			if tag == "" || tag == "-" {
				tag = fld.Tag.Get("json")
			}
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &Svc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *Svc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// Struct validates v and converts the first failure into a coded validation
// error carrying the offending field name
func Struct(v any) error {
	s := Get()
	err := s.Validator.Struct(v)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return perr.NewField(perr.ErrorCodeValidation, fe.Field(), fe.Translate(s.Translator))
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "validation failed")
}

// FieldErrors returns all field errors for v, or nil when it passes.
// Used where every failing field matters (per-row dataset checks)
func FieldErrors(v any) []FieldError {
	s := Get()
	err := s.Validator.Struct(v)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fe)
		}
		return out
	}
	return nil
}

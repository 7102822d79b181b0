// Package validate holds the request validator singleton
package validate

import (
	stderrs "errors"
	"math"
	"reflect"
	"strings"
	"sync"

	perr "easywealth/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Svc pairs the validator with its english translator
type Svc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *Svc
)

// Get returns the validator singleton, initializing on first use
func Get() *Svc {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// report json names, not Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerFinite(v, trans)

		svc = &Svc{Validator: v, Translator: trans}
	})
	return svc
}

// finite rejects NaN and infinities on float fields
func registerFinite(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			x := f.Float()
			return !math.IsNaN(x) && !math.IsInf(x, 0)
		default:
			return true
		}
	})
	_ = v.RegisterTranslation("finite", trans,
		func(ut ut.Translator) error { return ut.Add("finite", "{0} must be a finite number", true) },
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("finite", fe.Field())
			return t
		},
	)
}

// Struct validates s and maps the first failure to a coded validation error
func Struct(s any) error {
	g := Get()
	err := g.Validator.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if stderrs.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return perr.WithField(perr.Validationf("%s", fe.Translate(g.Translator)), fe.Field())
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "validation failed")
}

// Package validation validates request payloads and translates the failures into the request locale
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags & texts
const (
	notBlankTag = "notblank"
	trackTag    = "track"
)

// FieldErrors maps JSON field names to translated messages
type FieldErrors map[string]string

// Error wraps field errors and matches models.ErrValidation with errors.Is
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s: %s", models.ErrValidation, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, models.ErrValidation) true
func (e *Error) Is(target error) bool {
	return target == models.ErrValidation
}

// Validator validates structs and translates failures with the catalog's translators
type Validator struct {
	validate *validator.Validate
	catalog  *i18n.Catalog
}

// New creates a validator registering English defaults and Hebrew texts
func New(catalog *i18n.Catalog) (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	if err := validate.RegisterValidation(notBlankTag, notBlankValidation); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", notBlankTag, err)
	}
	if err := validate.RegisterValidation(trackTag, trackValidation); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", trackTag, err)
	}

	enTrans := catalog.Translator(i18n.English)
	if err := en_translations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, fmt.Errorf("failed to register english translations: %w", err)
	}
	for tag, text := range englishCustomTexts {
		if err := registerTranslation(validate, enTrans, tag, text); err != nil {
			return nil, err
		}
	}

	heTrans := catalog.Translator(i18n.Hebrew)
	for tag, text := range hebrewTexts {
		if err := registerTranslation(validate, heTrans, tag, text); err != nil {
			return nil, err
		}
	}

	return &Validator{validate: validate, catalog: catalog}, nil
}

// Struct validates s and returns *Error with messages in locale, nil when valid
func (v *Validator) Struct(locale string, s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("failed to validate: %w", err)
	}

	trans := v.catalog.Translator(locale)
	fields := make(FieldErrors, len(validationErrs))
	for _, fe := range validationErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fe.Translate(trans)
	}
	return &Error{Fields: fields}
}

// registerTranslation registers text for tag. Length based tags get "{1}" replaced by the param.
func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string) error {
	err := validate.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, err := t.T(tag, fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return s
		},
	)
	if err != nil {
		return fmt.Errorf("failed to register %s translation for %s: %w", trans.Locale(), tag, err)
	}
	return nil
}

var englishCustomTexts = map[string]string{
	notBlankTag: "{0} cannot be blank",
	trackTag:    "{0} must be one of SELF, GROUP or PREMIUM",
}

var hebrewTexts = map[string]string{
	"required":  "השדה {0} הוא שדה חובה",
	"email":     "השדה {0} חייב להכיל כתובת אימייל תקינה",
	"min":       "השדה {0} חייב להיות לפחות {1}",
	"max":       "השדה {0} יכול להיות לכל היותר {1}",
	"gt":        "השדה {0} חייב להיות גדול מ-{1}",
	"oneof":     "השדה {0} חייב להיות אחד מהערכים: {1}",
	"alphanum":  "השדה {0} יכול להכיל אותיות באנגלית וספרות בלבד",
	notBlankTag: "השדה {0} אינו יכול להיות ריק",
	trackTag:    "השדה {0} חייב להיות SELF, GROUP או PREMIUM",
}

// Custom Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func trackValidation(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case models.Track:
		return v.Valid()
	case string:
		return models.Track(v).Valid()
	}
	return false
}

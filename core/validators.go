package core

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

// ClockLayout is the wall-clock format of timetable times.
const ClockLayout = "15:04"

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	clockTag = "clock"
	// ClockText is the message for times not formatted as HH:MM.
	ClockText = "must be a time of day formatted as HH:MM"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	_ = validate.RegisterValidation(clockTag, clockValidation)
	RegisterCustomTranslation(validate, translator, clockTag, ClockText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldErrors flattens validation failures into {field: message}.
// ok is false when err is not a validation failure.
func FieldErrors(err error, translator ut.Translator) (fields map[string]string, ok bool) {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		fields = make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fields[vErr.Field()] = vErr.Translate(translator)
		}
		return fields, true
	case *ValidationError:
		fields = make(map[string]string, len(origErr.Fields))
		for _, fErr := range origErr.Fields {
			fields[fErr.Field] = fErr.Error
		}
		if len(fields) == 0 && origErr.Err != nil {
			fields["error"] = origErr.Err.Error()
		}
		return fields, true
	default:
		return nil, false
	}
}

// ParseClock parses an HH:MM wall-clock time. "9:00" is rejected.
func ParseClock(s string) (time.Time, error) {
	if len(s) != len(ClockLayout) {
		return time.Time{}, errors.Errorf("invalid time %q: want HH:MM", s)
	}
	return time.Parse(ClockLayout, s)
}

// Custom Global Validators

// notBlankValidation rejects strings made only of whitespace.
func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// clockValidation only allows HH:MM times.
func clockValidation(fl validator.FieldLevel) bool {
	_, err := ParseClock(fl.Field().String())
	return err == nil
}

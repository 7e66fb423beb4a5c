package tracker

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Allen-Davis-M/Attendify/core"
)

var (
	errMalformed = errors.New("malformed user data")

	weekdayTag  = "weekday"
	weekdayText = "must be one of " + joinDays(Days)

	colorTag  = "color"
	colorText = "must be one of " + strings.Join(Colors, ", ")

	attendedLteTag  = "attendedlte"
	attendedLteText = "attended cannot exceed total"

	endAfterStartTag  = "endafterstart"
	endAfterStartText = "end time must be after start time"

	unknownSubjectText = "unknown subject"
)

func joinDays(days []Day) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

// InitValidators registers the tracker's custom validations and their messages.
// core.InitValidators must have been called on validate first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(weekdayTag, weekdayValidation)
	core.RegisterCustomTranslation(validate, translator, weekdayTag, weekdayText)

	_ = validate.RegisterValidation(colorTag, colorValidation)
	core.RegisterCustomTranslation(validate, translator, colorTag, colorText)

	// ltefield is only used for attended <= total
	core.RegisterCustomTranslation(validate, translator, "ltefield", attendedLteText, true)

	validate.RegisterStructValidation(trackerStructValidation, UpdateSubject{}, NewEntry{})
	core.RegisterCustomTranslation(validate, translator, attendedLteTag, attendedLteText)
	core.RegisterCustomTranslation(validate, translator, endAfterStartTag, endAfterStartText)
}

// Custom Validators

func weekdayValidation(fl validator.FieldLevel) bool {
	return Day(fl.Field().String()).Valid()
}

func colorValidation(fl validator.FieldLevel) bool {
	return validColor(fl.Field().String())
}

// trackerStructValidation does struct level validation on UpdateSubject and NewEntry structs.
func trackerStructValidation(sl validator.StructLevel) {
	switch v := sl.Current().Interface().(type) {
	case UpdateSubject:
		if v.Attended != nil && v.Total != nil && *v.Attended > *v.Total {
			sl.ReportError(v.Attended, "attended", "Attended", attendedLteTag, "")
		}
	case NewEntry:
		start, sErr := core.ParseClock(v.StartTime)
		end, eErr := core.ParseClock(v.EndTime)
		if sErr == nil && eErr == nil && !end.After(start) {
			sl.ReportError(v.EndTime, "endTime", "EndTime", endAfterStartTag, "")
		}
	}
}

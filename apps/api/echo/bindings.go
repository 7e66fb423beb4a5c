package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Allen-Davis-M/Attendify/core"
)

const dateLayout = "2006-01-02"

var (
	dateParam = "date"

	// nowFunc is replaced in tests.
	nowFunc = time.Now
)

// DateQuery binds the optional ?date=YYYY-MM-DD parameter, defaulting to today.
type DateQuery struct {
	Date time.Time
}

func (dq *DateQuery) Bind(ctx echo.Context) error {
	dq.Date = nowFunc()
	val := ctx.QueryParam(dateParam)
	if val == "" {
		return nil
	}
	date, err := time.ParseInLocation(dateLayout, val, time.Local)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: dateParam, Error: "must be a date formatted as YYYY-MM-DD"})
	}
	dq.Date = date
	return nil
}

// ProjectionQuery binds ?attended=&total=&target= for ad hoc projections.
// target defaults to the global target.
type ProjectionQuery struct {
	Attended int     `json:"attended" validate:"min=0,ltefield=Total"`
	Total    int     `json:"total" validate:"min=0"`
	Target   float64 `json:"target" validate:"min=0,max=100"`
}

func (pq *ProjectionQuery) Bind(ctx echo.Context, defaultTarget float64) error {
	var flds []core.FieldError
	parseInt := func(name string, dst *int) {
		if v := ctx.QueryParam(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				flds = append(flds, core.FieldError{Field: name, Error: "must be an integer"})
				return
			}
			*dst = n
		}
	}
	parseInt("attended", &pq.Attended)
	parseInt("total", &pq.Total)

	pq.Target = defaultTarget
	if v := ctx.QueryParam("target"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			flds = append(flds, core.FieldError{Field: "target", Error: "must be a number"})
		} else {
			pq.Target = f
		}
	}

	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

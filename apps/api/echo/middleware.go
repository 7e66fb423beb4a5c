package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

const ctxSubjectKey = "subject"

// subjectMiddleware loads the subject named by the :id path param into the context.
func subjectMiddleware(svc *tracker.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			subj, err := svc.Subject(ctx.Param("id"))
			if err != nil {
				return err
			}
			ctx.Set(ctxSubjectKey, subj)
			return next(ctx)
		}
	}
}

var errSubjectNotInCtx = errors.New("subject object not found in echo.Context")

func getContextSubject(ctx echo.Context) (tracker.Subject, error) {
	if subj, ok := ctx.Get(ctxSubjectKey).(tracker.Subject); ok {
		return subj, nil
	}
	return tracker.Subject{}, errSubjectNotInCtx
}

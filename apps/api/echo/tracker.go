package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

type (
	trackerApi struct {
		svc      *tracker.Service
		validate *validator.Validate
	}

	AttendanceRequest struct {
		Present *bool `json:"present" validate:"required"`
	}

	ProjectionResponse struct {
		Attended    int     `json:"attended"`
		Total       int     `json:"total"`
		Target      float64 `json:"target"`
		Percentage  float64 `json:"percentage"`
		BelowTarget bool    `json:"belowTarget"`
		CanSkip     int     `json:"canSkip"`
		MustAttend  int     `json:"mustAttend"`
		// set for 0% and 100% targets
		SkipUnbounded bool `json:"skipUnbounded,omitempty"`
		Unattainable  bool `json:"unattainable,omitempty"`
	}
)

func registerTrackerAPI(g *echo.Group, svc *tracker.Service, validate *validator.Validate) {
	api := trackerApi{svc: svc, validate: validate}

	g.GET("/dashboard", api.dashboard)
	g.GET("/projection", api.projection)

	sg := g.Group("/subjects")
	sg.GET("", api.querySubjects)
	sg.POST("", api.createSubject)
	sg.POST("/:id/attendance", api.markAttendance)

	// detail endpoints
	dg := sg.Group("/:id", subjectMiddleware(svc))
	dg.GET("", api.retrieveSubject)
	dg.PUT("", api.updateSubject)
	dg.DELETE("", api.destroySubject)

	tg := g.Group("/timetable")
	tg.GET("", api.queryTimetable)
	tg.POST("", api.createEntry)
	tg.GET("/week", api.week)
	tg.DELETE("/:id", api.destroyEntry)

	g.GET("/settings", api.retrieveSettings)
	g.PUT("/settings", api.updateSettings)

	g.GET("/data", api.exportData)
	g.PUT("/data", api.importData)
	g.POST("/data/reset", api.resetData)
}

// Handlers

func (api *trackerApi) dashboard(ctx echo.Context) error {
	var query DateQuery
	if err := query.Bind(ctx); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Dashboard(query.Date))
}

func (api *trackerApi) projection(ctx echo.Context) error {
	var query ProjectionQuery
	if err := query.Bind(ctx, api.svc.Settings().GlobalTarget); err != nil {
		return err
	}
	if err := api.validate.Struct(query); err != nil {
		return err
	}

	st := tracker.StatusOf(tracker.Subject{Attended: query.Attended, Total: query.Total, TargetAttendance: query.Target})
	return ctx.JSON(http.StatusOK, ProjectionResponse{
		Attended:      query.Attended,
		Total:         query.Total,
		Target:        query.Target,
		Percentage:    st.Percentage,
		BelowTarget:   st.BelowTarget,
		CanSkip:       st.CanSkip,
		MustAttend:    st.MustAttend,
		SkipUnbounded: st.SkipUnbounded,
		Unattainable:  st.Unattainable,
	})
}

func (api *trackerApi) querySubjects(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Statuses())
}

func (api *trackerApi) createSubject(ctx echo.Context) error {
	var data tracker.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}

	subj, err := api.svc.AddSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, tracker.StatusOf(subj))
}

func (api *trackerApi) retrieveSubject(ctx echo.Context) error {
	subj, err := getContextSubject(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context subject")
	}
	return ctx.JSON(http.StatusOK, tracker.StatusOf(subj))
}

func (api *trackerApi) updateSubject(ctx echo.Context) error {
	subj, err := getContextSubject(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context subject")
	}

	var data tracker.UpdateSubject
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}

	subj, err = api.svc.UpdateSubject(ctx.Request().Context(), subj.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, tracker.StatusOf(subj))
}

func (api *trackerApi) destroySubject(ctx echo.Context) error {
	subj, err := getContextSubject(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context subject")
	}
	if err = api.svc.DeleteSubject(ctx.Request().Context(), subj.ID); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *trackerApi) markAttendance(ctx echo.Context) error {
	var data AttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	subj, found, err := api.svc.MarkAttendance(ctx.Request().Context(), ctx.Param("id"), *data.Present)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	if !found { // nothing was recorded
		return tracker.ErrSubjectNotFound
	}
	return ctx.JSON(http.StatusOK, tracker.StatusOf(subj))
}

func (api *trackerApi) queryTimetable(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Timetable())
}

func (api *trackerApi) createEntry(ctx echo.Context) error {
	var data tracker.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}

	entry, err := api.svc.AddEntry(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating timetable entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *trackerApi) week(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Week())
}

func (api *trackerApi) destroyEntry(ctx echo.Context) error {
	if err := api.svc.DeleteEntry(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting timetable entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *trackerApi) retrieveSettings(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Settings())
}

func (api *trackerApi) updateSettings(ctx echo.Context) error {
	var data tracker.UpdateSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSettings")
	}

	settings, err := api.svc.UpdateSettings(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating settings")
	}
	return ctx.JSON(http.StatusOK, settings)
}

func (api *trackerApi) exportData(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Data())
}

func (api *trackerApi) importData(ctx echo.Context) error {
	var data tracker.UserData
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UserData")
	}
	if err := api.svc.Replace(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "importing user data")
	}
	return ctx.JSON(http.StatusOK, api.svc.Data())
}

func (api *trackerApi) resetData(ctx echo.Context) error {
	if err := api.svc.Reset(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "resetting user data")
	}
	return ctx.JSON(http.StatusOK, api.svc.Data())
}

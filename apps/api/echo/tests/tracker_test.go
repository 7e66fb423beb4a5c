package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

func Test_trackerApi_subjects(t *testing.T) {
	app, env := setup(t)

	maths, _ := env.Svc.Subject("1")
	markedMaths := maths
	markedMaths.Attended, markedMaths.Total = 13, 16

	tests := []httpTest{
		{name: "home", path: "/", wantCode: http.StatusOK},
		{name: "list", path: "/v1/subjects", wantCode: http.StatusOK, wantData: marshallObj(t, env.Svc.Statuses())},
		{name: "retrieve", path: "/v1/subjects/1", wantCode: http.StatusOK, wantData: marshallObj(t, tracker.StatusOf(maths))},
		{name: "retrieve (trailing slash)", path: "/v1/subjects/1/", wantCode: http.StatusOK, wantData: marshallObj(t, tracker.StatusOf(maths))},
		{
			name: "retrieve unknown", path: "/v1/subjects/nope", wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Error: "subject not found"}),
		},
		{
			name: "create blank name", method: http.MethodPost, path: "/v1/subjects", body: []byte(`{"name":"  "}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"name":"this field cannot be blank"}`),
		},
		{
			name: "create with bad color", method: http.MethodPost, path: "/v1/subjects", body: []byte(`{"name":"Art","color":"red"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"color":"must be one of bg-blue-500, bg-purple-500, bg-emerald-500, bg-rose-500, bg-amber-500, bg-indigo-500, bg-cyan-500, bg-pink-500"}`),
		},
		{
			name: "create malformed body", method: http.MethodPost, path: "/v1/subjects", body: []byte(`{"name":`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "update attended over total", method: http.MethodPut, path: "/v1/subjects/2", body: []byte(`{"attended":20}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"attended":"attended cannot exceed total"}`),
		},
		{
			name: "update unknown", method: http.MethodPut, path: "/v1/subjects/nope", body: []byte(`{"name":"X"}`),
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "subject not found"}),
		},
		{
			name: "mark present", method: http.MethodPost, path: "/v1/subjects/1/attendance", body: []byte(`{"present":true}`),
			wantCode: http.StatusOK, wantData: marshallObj(t, tracker.StatusOf(markedMaths)),
		},
		{
			name: "mark without present", method: http.MethodPost, path: "/v1/subjects/1/attendance", body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"present":"this field is required"}`),
		},
		{
			name: "mark unknown", method: http.MethodPost, path: "/v1/subjects/nope/attendance", body: []byte(`{"present":false}`),
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "subject not found"}),
		},
	}
	runHTTPTests(t, app, tests)

	// nothing but the one mark was written
	assert.Len(t, env.Svc.Subjects(), 2)
	s, err := env.Svc.Subject("2")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Attended)
}

func Test_trackerApi_createSubject(t *testing.T) {
	app, env := setup(t)

	rec := do(app, http.MethodPost, "/v1/subjects", []byte(`{"name":"Chemistry","targetAttendance":80}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got tracker.SubjectStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Chemistry", got.Name)
	assert.Equal(t, 80.0, got.TargetAttendance)
	assert.Equal(t, tracker.DefaultColor, got.Color)
	assert.True(t, got.BelowTarget)

	s, err := env.Svc.Subject(got.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Subject, s)

	// the change is written through
	raw, err := env.Store.Get(context.Background(), "attendify_data")
	require.NoError(t, err)
	assert.Contains(t, raw, `"name":"Chemistry"`)
}

func Test_trackerApi_timetable(t *testing.T) {
	app, env := setup(t)

	tests := []httpTest{
		{name: "list", path: "/v1/timetable", wantCode: http.StatusOK, wantData: marshallObj(t, env.Svc.Timetable())},
		{
			name: "create for unknown subject", method: http.MethodPost, path: "/v1/timetable",
			body:     []byte(`{"subjectId":"9","day":"Monday","startTime":"08:00","endTime":"09:00"}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"subjectId":"unknown subject"}`),
		},
		{
			name: "create with end before start", method: http.MethodPost, path: "/v1/timetable",
			body:     []byte(`{"subjectId":"1","day":"Monday","startTime":"10:00","endTime":"09:00"}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"endTime":"end time must be after start time"}`),
		},
		{
			name: "create with missing fields", method: http.MethodPost, path: "/v1/timetable",
			body:     []byte(`{"subjectId":"1"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"day":"this field is required","startTime":"this field is required","endTime":"this field is required"}`),
		},
		{
			name: "delete unknown", method: http.MethodDelete, path: "/v1/timetable/nope",
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "timetable entry not found"}),
		},
		{name: "delete", method: http.MethodDelete, path: "/v1/timetable/t2", wantCode: http.StatusNoContent},
	}
	runHTTPTests(t, app, tests)

	rec := do(app, http.MethodPost, "/v1/timetable", []byte(`{"subjectId":"2","day":"friday","startTime":"08:00","endTime":"09:30"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"room":null`)
	assert.Contains(t, rec.Body.String(), `"day":"Friday"`)

	// deleting a subject keeps its classes
	rec = do(app, http.MethodDelete, "/v1/subjects/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(app, http.MethodGet, "/v1/timetable/week", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var week []tracker.DaySchedule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &week))
	require.Len(t, week, 5)
	require.Len(t, week[0].Classes, 1)
	assert.Equal(t, tracker.UnknownSubjectName, week[0].Classes[0].Subject.Name)
	assert.False(t, week[0].Classes[0].Known)
	assert.Empty(t, week[1].Classes)
	require.Len(t, week[4].Classes, 1)
	assert.Equal(t, "Physics", week[4].Classes[0].Subject.Name)
}

func Test_trackerApi_projection(t *testing.T) {
	app, _ := setup(t)

	tests := []httpTest{
		{
			name: "above target", path: "/v1/projection?attended=12&total=15&target=75", wantCode: http.StatusOK,
			wantData: []byte(`{"attended":12,"total":15,"target":75,"percentage":80,"belowTarget":false,"canSkip":1,"mustAttend":0}`),
		},
		{
			name: "global target by default", path: "/v1/projection?attended=10&total=15", wantCode: http.StatusOK,
			wantData: []byte(`{"attended":10,"total":15,"target":75,"percentage":66.66666666666666,"belowTarget":true,"canSkip":0,"mustAttend":5}`),
		},
		{
			name: "100% target", path: "/v1/projection?attended=4&total=5&target=100", wantCode: http.StatusOK,
			wantData: []byte(`{"attended":4,"total":5,"target":100,"percentage":80,"belowTarget":true,"canSkip":0,"mustAttend":0,"unattainable":true}`),
		},
		{
			name: "tiny target", path: "/v1/projection?attended=1000&total=1000&target=1e-15", wantCode: http.StatusOK,
			wantData: []byte(`{"attended":1000,"total":1000,"target":1e-15,"percentage":100,"belowTarget":false,"canSkip":2147483647,"mustAttend":0}`),
		},
		{
			name: "nothing held", path: "/v1/projection", wantCode: http.StatusOK,
			wantData: []byte(`{"attended":0,"total":0,"target":75,"percentage":0,"belowTarget":true,"canSkip":0,"mustAttend":0}`),
		},
		{
			name: "not a number", path: "/v1/projection?attended=x&target=y", wantCode: http.StatusBadRequest,
			wantData: []byte(`{"attended":"must be an integer","target":"must be a number"}`),
		},
		{
			name: "attended over total", path: "/v1/projection?attended=3&total=2", wantCode: http.StatusBadRequest,
			wantData: []byte(`{"attended":"attended cannot exceed total"}`),
		},
	}
	runHTTPTests(t, app, tests)
}

func Test_trackerApi_dashboard(t *testing.T) {
	app, _ := setup(t)

	rec := do(app, http.MethodGet, "/v1/dashboard?date=2024-01-07", nil) // a Sunday
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var dash tracker.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, "Alex", dash.UserName)
	assert.Equal(t, tracker.Monday, dash.Today)
	require.Len(t, dash.TodayClasses, 1)
	assert.Equal(t, "Mathematics", dash.TodayClasses[0].Subject.Name)
	assert.Equal(t, 22, dash.Summary.Attended)
	assert.Equal(t, 30, dash.Summary.Conducted)
	require.Len(t, dash.Subjects, 2)
	assert.Equal(t, 1, dash.Subjects[0].CanSkip)
	assert.Equal(t, 5, dash.Subjects[1].MustAttend)

	runHTTPTests(t, app, []httpTest{
		{
			name: "bad date", path: "/v1/dashboard?date=07/01/2024", wantCode: http.StatusBadRequest,
			wantData: []byte(`{"date":"must be a date formatted as YYYY-MM-DD"}`),
		},
	})
}

func Test_trackerApi_settingsAndData(t *testing.T) {
	app, env := setup(t)

	imported := tracker.UserData{
		Subjects:  []tracker.Subject{{ID: "a", Name: "Art", TargetAttendance: 50, Attended: 1, Total: 2, Color: "bg-pink-500"}},
		Timetable: []tracker.TimetableEntry{},
		Settings:  tracker.Settings{GlobalTarget: 50, UserName: "Kim"},
	}

	tests := []httpTest{
		{name: "settings", path: "/v1/settings", wantCode: http.StatusOK, wantData: []byte(`{"globalTarget":75,"userName":"Alex"}`)},
		{
			name: "update settings", method: http.MethodPut, path: "/v1/settings", body: []byte(`{"userName":"Sam"}`),
			wantCode: http.StatusOK, wantData: []byte(`{"globalTarget":75,"userName":"Sam"}`),
		},
		{
			name: "update settings out of range", method: http.MethodPut, path: "/v1/settings", body: []byte(`{"globalTarget":101}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"globalTarget":"globalTarget must be 100 or less"}`),
		},
		{
			name: "import malformed", method: http.MethodPut, path: "/v1/data",
			body:     []byte(`{"subjects":[{"id":"a","name":"Art","attended":3,"total":2}]}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"subjects[0].attended":"attended cannot exceed total"}`),
		},
		{
			name: "import", method: http.MethodPut, path: "/v1/data", body: marshallObj(t, imported),
			wantCode: http.StatusOK, wantData: marshallObj(t, imported),
		},
		{name: "export", path: "/v1/data", wantCode: http.StatusOK, wantData: marshallObj(t, imported)},
		{
			name: "reset", method: http.MethodPost, path: "/v1/data/reset",
			wantCode: http.StatusOK, wantData: marshallObj(t, tracker.StarterData()),
		},
	}
	runHTTPTests(t, app, tests)

	assert.Equal(t, tracker.StarterData(), env.Svc.Data())
}

func Test_trackerApi_closedStoreShutsDown(t *testing.T) {
	app, env := setup(t)
	require.NoError(t, env.Store.Close())

	tests := []httpTest{
		{name: "reads still served", path: "/v1/settings", wantCode: http.StatusOK, wantData: []byte(`{"globalTarget":75,"userName":"Alex"}`)},
		{
			name: "write fails", method: http.MethodPut, path: "/v1/settings", body: []byte(`{"userName":"Sam"}`),
			wantCode: http.StatusInternalServerError, wantData: []byte(`{"error":"Internal Server Error"}`),
		},
		{
			name: "second write fails", method: http.MethodPut, path: "/v1/settings", body: []byte(`{"globalTarget":80}`),
			wantCode: http.StatusInternalServerError, wantData: []byte(`{"error":"Internal Server Error"}`),
		},
	}
	runHTTPTests(t, app, tests)

	select {
	case sig := <-app.ShutdownSignal():
		assert.Equal(t, syscall.SIGTERM, sig)
	default:
		t.Fatal("server was not asked to shut down")
	}
	assert.Equal(t, "Alex", env.Svc.Data().Settings.UserName)
}

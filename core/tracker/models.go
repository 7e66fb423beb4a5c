package tracker

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/attendance"
)

// Day is a weekday label.
type Day string

// Days
const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

const (
	DefaultTarget      = 75.0
	UnknownSubjectName = "Unknown"
)

var (
	// Days lists every label a TimetableEntry may use, Monday first.
	Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
	// SchoolDays are always shown in the week view.
	SchoolDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

	Colors = []string{
		"bg-blue-500", "bg-purple-500", "bg-emerald-500",
		"bg-rose-500", "bg-amber-500", "bg-indigo-500",
		"bg-cyan-500", "bg-pink-500",
	}
	DefaultColor = Colors[0]
)

// ParseDay matches a weekday label case-insensitively.
func ParseDay(s string) (Day, bool) {
	s = core.CleanString(s)
	for _, d := range Days {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

func (d Day) Valid() bool {
	for _, day := range Days {
		if d == day {
			return true
		}
	}
	return false
}

func validColor(c string) bool {
	for _, color := range Colors {
		if c == color {
			return true
		}
	}
	return false
}

type Subject struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	TargetAttendance float64 `json:"targetAttendance"` // percent
	Attended         int     `json:"attended"`
	Total            int     `json:"total"`
	Color            string  `json:"color"`
}

// mark applies one attendance event: total always grows, attended only when present.
func (s *Subject) mark(present bool) {
	s.Total++
	if present {
		s.Attended++
	}
}

func (s Subject) Percentage() float64 {
	return attendance.Percentage(s.Attended, s.Total)
}

func (s Subject) Projection() attendance.Projection {
	return attendance.Project(s.Attended, s.Total, s.TargetAttendance)
}

type TimetableEntry struct {
	ID        string      `json:"id"`
	SubjectID string      `json:"subjectId"` // non-owning, may dangle
	Day       Day         `json:"day"`
	StartTime string      `json:"startTime"` // HH:MM
	EndTime   string      `json:"endTime"`   // HH:MM
	Room      null.String `json:"room"`
}

type Settings struct {
	GlobalTarget float64 `json:"globalTarget"`
	UserName     string  `json:"userName"`
}

// UserData is the unit of persistence.
type UserData struct {
	Subjects  []Subject        `json:"subjects"`
	Timetable []TimetableEntry `json:"timetable"`
	Settings  Settings         `json:"settings"`
}

// Clone returns a deep copy.
func (d UserData) Clone() UserData {
	c := UserData{
		Subjects:  make([]Subject, len(d.Subjects)),
		Timetable: make([]TimetableEntry, len(d.Timetable)),
		Settings:  d.Settings,
	}
	copy(c.Subjects, d.Subjects)
	copy(c.Timetable, d.Timetable)
	return c
}

func (d UserData) subjectIndex(id string) int {
	for i, s := range d.Subjects {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (d UserData) entryIndex(id string) int {
	for i, e := range d.Timetable {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (d UserData) Subject(id string) (Subject, bool) {
	if idx := d.subjectIndex(id); idx >= 0 {
		return d.Subjects[idx], true
	}
	return Subject{}, false
}

// ResolveSubject never fails: a dangling id resolves to the Unknown placeholder.
func (d UserData) ResolveSubject(id string) (Subject, bool) {
	if s, ok := d.Subject(id); ok {
		return s, true
	}
	return Subject{ID: id, Name: UnknownSubjectName}, false
}

// Check enforces the model invariants on data coming from outside (storage, imports):
// whatever the editors would reject is rejected here too. An empty color is
// allowed, normalize gives it the default one.
func (d UserData) Check() error {
	malformed := func(field, text string) error {
		return core.NewValidationError(errMalformed, core.FieldError{Field: field, Error: text})
	}

	seen := make(map[string]bool, len(d.Subjects))
	for i, s := range d.Subjects {
		fld := func(name string) string { return "subjects[" + strconv.Itoa(i) + "]." + name }
		switch {
		case s.ID == "":
			return malformed(fld("id"), "id is required")
		case seen[s.ID]:
			return malformed(fld("id"), "duplicate id "+s.ID)
		case core.CleanString(s.Name) == "":
			return malformed(fld("name"), "name cannot be blank")
		case s.Attended < 0 || s.Total < 0:
			return malformed(fld("total"), "counts cannot be negative")
		case s.Attended > s.Total:
			return malformed(fld("attended"), attendedLteText)
		case s.TargetAttendance < 0 || s.TargetAttendance > 100:
			return malformed(fld("targetAttendance"), "target must be between 0 and 100")
		case s.Color != "" && !validColor(s.Color):
			return malformed(fld("color"), colorText)
		}
		seen[s.ID] = true
	}

	seen = make(map[string]bool, len(d.Timetable))
	for i, e := range d.Timetable {
		fld := func(name string) string { return "timetable[" + strconv.Itoa(i) + "]." + name }
		start, startErr := core.ParseClock(e.StartTime)
		end, endErr := core.ParseClock(e.EndTime)
		switch {
		case e.ID == "":
			return malformed(fld("id"), "id is required")
		case seen[e.ID]:
			return malformed(fld("id"), "duplicate id "+e.ID)
		case e.SubjectID == "":
			return malformed(fld("subjectId"), "subjectId is required")
		case !e.Day.Valid():
			return malformed(fld("day"), weekdayText)
		case startErr != nil:
			return malformed(fld("startTime"), core.ClockText)
		case endErr != nil:
			return malformed(fld("endTime"), core.ClockText)
		case !end.After(start):
			return malformed(fld("endTime"), endAfterStartText)
		}
		seen[e.ID] = true
	}

	if t := d.Settings.GlobalTarget; t < 0 || t > 100 {
		return malformed("settings.globalTarget", "target must be between 0 and 100")
	}
	return nil
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name             string   `json:"name" validate:"notblank"`
	TargetAttendance *float64 `json:"targetAttendance" validate:"omitempty,min=0,max=100"`
	Attended         int      `json:"attended" validate:"min=0,ltefield=Total"`
	Total            int      `json:"total" validate:"min=0"`
	Color            string   `json:"color" validate:"omitempty,color"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Color = core.CleanString(ns.Color)
	return validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing Subject.
// Zero values keep the current value.
type UpdateSubject struct {
	Name             string   `json:"name"`
	TargetAttendance *float64 `json:"targetAttendance" validate:"omitempty,min=0,max=100"`
	Attended         *int     `json:"attended" validate:"omitempty,min=0"`
	Total            *int     `json:"total" validate:"omitempty,min=0"`
	Color            string   `json:"color" validate:"omitempty,color"`
}

func (us *UpdateSubject) Validate(orig Subject, validate *validator.Validate) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	us.Color = core.CleanString(us.Color) // empty keeps the current color
	if us.TargetAttendance == nil {
		target := orig.TargetAttendance
		us.TargetAttendance = &target
	}
	if us.Attended == nil {
		attended := orig.Attended
		us.Attended = &attended
	}
	if us.Total == nil {
		total := orig.Total
		us.Total = &total
	}
	return validate.Struct(us)
}

// NewEntry contains information needed to add a class to the timetable.
type NewEntry struct {
	SubjectID string `json:"subjectId" validate:"required"`
	Day       Day    `json:"day" validate:"required,weekday"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
	Room      string `json:"room"`
}

func (ne *NewEntry) Validate(validate *validator.Validate) error {
	ne.SubjectID = core.CleanString(ne.SubjectID)
	if day, ok := ParseDay(string(ne.Day)); ok {
		ne.Day = day
	}
	ne.StartTime = core.CleanString(ne.StartTime)
	ne.EndTime = core.CleanString(ne.EndTime)
	ne.Room = core.CleanString(ne.Room)
	return validate.Struct(ne)
}

// UpdateSettings defines what settings may be changed. Zero values keep the current value.
type UpdateSettings struct {
	GlobalTarget *float64 `json:"globalTarget" validate:"omitempty,min=0,max=100"`
	UserName     string   `json:"userName"`
}

func (us *UpdateSettings) Validate(orig Settings, validate *validator.Validate) error {
	if name := core.CleanString(us.UserName); name != "" {
		us.UserName = name
	} else {
		us.UserName = orig.UserName
	}
	if us.GlobalTarget == nil {
		target := orig.GlobalTarget
		us.GlobalTarget = &target
	}
	return validate.Struct(us)
}

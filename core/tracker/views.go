package tracker

import (
	"sort"
	"time"

	"github.com/Allen-Davis-M/Attendify/core/attendance"
)

// SubjectStatus is a Subject with its projection, as shown to the user.
// Only one of CanSkip and MustAttend is ever non-zero.
type SubjectStatus struct {
	Subject
	attendance.Projection
	Percentage  float64 `json:"percentage"`
	BelowTarget bool    `json:"belowTarget"`
}

func StatusOf(s Subject) SubjectStatus {
	st := SubjectStatus{
		Subject:     s,
		Projection:  s.Projection(),
		Percentage:  s.Percentage(),
		BelowTarget: attendance.BelowTarget(s.Attended, s.Total, s.TargetAttendance),
	}
	if st.BelowTarget {
		st.CanSkip = 0
		st.SkipUnbounded = false
	} else {
		st.MustAttend = 0
		st.Unattainable = false
	}
	return st
}

// ScheduledClass is a timetable entry with its subject resolved.
// Known is false when the subject was deleted.
type ScheduledClass struct {
	Entry   TimetableEntry `json:"entry"`
	Subject Subject        `json:"subject"`
	Known   bool           `json:"known"`
}

type DaySchedule struct {
	Day     Day              `json:"day"`
	Classes []ScheduledClass `json:"classes"`
}

type Dashboard struct {
	UserName     string             `json:"userName"`
	Date         time.Time          `json:"date"`
	Today        Day                `json:"today"`
	TodayClasses []ScheduledClass   `json:"todayClasses"`
	Summary      attendance.Summary `json:"summary"`
	Subjects     []SubjectStatus    `json:"subjects"`
}

// TodayOf maps t to the day whose schedule is shown: weekends fall back to Monday.
func TodayOf(t time.Time) Day {
	switch t.Weekday() {
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	default:
		return Monday
	}
}

// classesOn returns the classes of day sorted by start time, ties kept in insertion order.
func (d UserData) classesOn(day Day) []ScheduledClass {
	classes := make([]ScheduledClass, 0)
	for _, e := range d.Timetable {
		if e.Day != day {
			continue
		}
		subj, known := d.ResolveSubject(e.SubjectID)
		classes = append(classes, ScheduledClass{Entry: e, Subject: subj, Known: known})
	}
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].Entry.StartTime < classes[j].Entry.StartTime
	})
	return classes
}

// Dashboard builds the overview for the given moment.
func (svc *Service) Dashboard(now time.Time) Dashboard {
	data := svc.Data()
	today := TodayOf(now)

	counts := make([]attendance.Counts, len(data.Subjects))
	statuses := make([]SubjectStatus, len(data.Subjects))
	for i, s := range data.Subjects {
		counts[i] = attendance.Counts{Attended: s.Attended, Total: s.Total}
		statuses[i] = StatusOf(s)
	}

	return Dashboard{
		UserName:     data.Settings.UserName,
		Date:         now,
		Today:        today,
		TodayClasses: data.classesOn(today),
		Summary:      attendance.Summarize(data.Settings.GlobalTarget, counts...),
		Subjects:     statuses,
	}
}

// Week lists the schedule of Monday to Friday, plus the weekend days that hold classes.
func (svc *Service) Week() []DaySchedule {
	data := svc.Data()
	week := make([]DaySchedule, 0, len(Days))
	for _, day := range Days {
		classes := data.classesOn(day)
		if len(classes) == 0 && (day == Saturday || day == Sunday) {
			continue
		}
		week = append(week, DaySchedule{Day: day, Classes: classes})
	}
	return week
}

// Statuses returns every subject with its projection, in insertion order.
func (svc *Service) Statuses() []SubjectStatus {
	subjects := svc.Subjects()
	statuses := make([]SubjectStatus, len(subjects))
	for i, s := range subjects {
		statuses[i] = StatusOf(s)
	}
	return statuses
}

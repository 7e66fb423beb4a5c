package tracker

import "github.com/volatiletech/null/v8"

// StarterData is the illustrative dataset used on first run and on reset.
func StarterData() UserData {
	return UserData{
		Subjects: []Subject{
			{ID: "1", Name: "Mathematics", TargetAttendance: DefaultTarget, Attended: 12, Total: 15, Color: "bg-blue-500"},
			{ID: "2", Name: "Physics", TargetAttendance: DefaultTarget, Attended: 10, Total: 15, Color: "bg-purple-500"},
		},
		Timetable: []TimetableEntry{
			{ID: "t1", SubjectID: "1", Day: Monday, StartTime: "09:00", EndTime: "10:30", Room: null.StringFrom("Room 302")},
			{ID: "t2", SubjectID: "2", Day: Tuesday, StartTime: "11:00", EndTime: "12:30", Room: null.StringFrom("Lab B")},
		},
		Settings: Settings{GlobalTarget: DefaultTarget, UserName: "Alex"},
	}
}

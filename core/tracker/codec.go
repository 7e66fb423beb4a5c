package tracker

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Allen-Davis-M/Attendify/core"
)

// Encode serializes data in its persisted form.
func Encode(data UserData) (string, error) {
	data = data.Clone()
	normalize(&data)
	b, err := json.Marshal(data)
	if err != nil {
		return "", errors.Wrap(err, "encoding user data")
	}
	return string(b), nil
}

// Decode parses a persisted value. Values that do not hold up the model invariants are rejected.
func Decode(s string) (UserData, error) {
	var data UserData
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return UserData{}, errors.Wrap(err, "decoding user data")
	}
	if err := data.Check(); err != nil {
		return UserData{}, err
	}
	normalize(&data)
	return data, nil
}

// normalize makes empty collections serialize as [] rather than null,
// gives subjects without a color the default one and unsets blank rooms.
func normalize(data *UserData) {
	if data.Subjects == nil {
		data.Subjects = []Subject{}
	}
	if data.Timetable == nil {
		data.Timetable = []TimetableEntry{}
	}
	for i := range data.Subjects {
		if data.Subjects[i].Color == "" {
			data.Subjects[i].Color = DefaultColor
		}
	}
	for i := range data.Timetable {
		if room := &data.Timetable[i].Room; room.Valid && core.CleanString(room.String) == "" {
			*room = null.String{}
		}
	}
}

package tracker

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Allen-Davis-M/Attendify/core"
)

var (
	// errors
	ErrSubjectNotFound = errors.New("subject not found")
	ErrEntryNotFound   = errors.New("timetable entry not found")
	ErrNoData          = errors.New("no user data stored")

	errUnchanged = errors.New("unchanged")

	// NewIDFunc generates entity ids. Replaced in tests.
	NewIDFunc = uuid.NewString
)

type (
	// Repository persists the whole UserData aggregate as one unit.
	Repository interface {
		// Load returns ErrNoData when nothing was ever saved.
		Load(ctx context.Context) (UserData, error)
		Save(ctx context.Context, data UserData) error
	}

	// Service owns the single in-memory copy of UserData.
	// Every mutation is written through to the Repository before it becomes visible.
	Service struct {
		repo     Repository
		validate *validator.Validate
		logger   core.Logger

		mu   sync.RWMutex
		data UserData
	}
)

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{repo: repo, validate: validate, logger: logger, data: StarterData()}
}

// Load reads the persisted state. A first run stores the starter dataset;
// unreadable or malformed state falls back to it without overwriting the store.
func (svc *Service) Load(ctx context.Context) error {
	data, err := svc.repo.Load(ctx)
	switch {
	case err == nil:
		svc.mu.Lock()
		svc.data = data
		svc.mu.Unlock()
		return nil
	case errors.Cause(err) == ErrNoData:
		starter := StarterData()
		if err = svc.repo.Save(ctx, starter); err != nil {
			return errors.Wrap(err, "saving starter data")
		}
		svc.mu.Lock()
		svc.data = starter
		svc.mu.Unlock()
		return nil
	default:
		svc.logger.Warn("loading user data failed, using starter data", err)
		svc.mu.Lock()
		svc.data = StarterData()
		svc.mu.Unlock()
		return nil
	}
}

// update runs fn on a copy of the current state, persists the result and then swaps it in.
// fn returns errUnchanged to skip the write.
func (svc *Service) update(ctx context.Context, fn func(d *UserData) error) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	next := svc.data.Clone()
	if err := fn(&next); err != nil {
		if err == errUnchanged {
			return nil
		}
		return err
	}
	if err := svc.repo.Save(ctx, next); err != nil {
		return errors.Wrap(err, "saving user data")
	}
	svc.data = next
	return nil
}

// Data returns a copy of the current state.
func (svc *Service) Data() UserData {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.data.Clone()
}

func (svc *Service) Subjects() []Subject {
	return svc.Data().Subjects
}

func (svc *Service) Subject(id string) (Subject, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	if s, ok := svc.data.Subject(id); ok {
		return s, nil
	}
	return Subject{}, ErrSubjectNotFound
}

// ResolveSubject never fails, see UserData.ResolveSubject.
func (svc *Service) ResolveSubject(id string) (Subject, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.data.ResolveSubject(id)
}

func (svc *Service) AddSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Subject{}, err
	}

	var subj Subject
	err := svc.update(ctx, func(d *UserData) error {
		taken := make(map[string]bool, len(d.Subjects))
		for _, s := range d.Subjects {
			taken[s.ID] = true
		}
		subj = Subject{
			ID:               newID(taken),
			Name:             ns.Name,
			TargetAttendance: DefaultTarget,
			Attended:         ns.Attended,
			Total:            ns.Total,
			Color:            DefaultColor,
		}
		if ns.TargetAttendance != nil {
			subj.TargetAttendance = *ns.TargetAttendance
		}
		if ns.Color != "" {
			subj.Color = ns.Color
		}
		d.Subjects = append(d.Subjects, subj)
		return nil
	})
	if err != nil {
		return Subject{}, err
	}
	return subj, nil
}

func (svc *Service) UpdateSubject(ctx context.Context, id string, us UpdateSubject) (Subject, error) {
	var subj Subject
	err := svc.update(ctx, func(d *UserData) error {
		idx := d.subjectIndex(id)
		if idx < 0 {
			return ErrSubjectNotFound
		}
		orig := d.Subjects[idx]
		if err := us.Validate(orig, svc.validate); err != nil {
			return err
		}

		subj = orig
		subj.Name = us.Name
		subj.TargetAttendance = *us.TargetAttendance
		subj.Attended = *us.Attended
		subj.Total = *us.Total
		if us.Color != "" {
			subj.Color = us.Color
		}
		d.Subjects[idx] = subj
		return nil
	})
	if err != nil {
		return Subject{}, err
	}
	return subj, nil
}

// DeleteSubject removes the subject only. Timetable entries pointing at it are kept.
func (svc *Service) DeleteSubject(ctx context.Context, id string) error {
	return svc.update(ctx, func(d *UserData) error {
		idx := d.subjectIndex(id)
		if idx < 0 {
			return ErrSubjectNotFound
		}
		d.Subjects = append(d.Subjects[:idx], d.Subjects[idx+1:]...)
		return nil
	})
}

// MarkAttendance records one class for the subject. An unknown id is ignored.
func (svc *Service) MarkAttendance(ctx context.Context, subjectID string, present bool) (Subject, bool, error) {
	var (
		subj  Subject
		found bool
	)
	err := svc.update(ctx, func(d *UserData) error {
		idx := d.subjectIndex(subjectID)
		if idx < 0 {
			svc.logger.Debug("marking attendance: unknown subject " + subjectID)
			return errUnchanged
		}
		d.Subjects[idx].mark(present)
		subj, found = d.Subjects[idx], true
		return nil
	})
	if err != nil {
		return Subject{}, false, err
	}
	return subj, found, nil
}

func (svc *Service) Timetable() []TimetableEntry {
	return svc.Data().Timetable
}

func (svc *Service) AddEntry(ctx context.Context, ne NewEntry) (TimetableEntry, error) {
	if err := ne.Validate(svc.validate); err != nil {
		return TimetableEntry{}, err
	}

	var entry TimetableEntry
	err := svc.update(ctx, func(d *UserData) error {
		if d.subjectIndex(ne.SubjectID) < 0 {
			return core.NewValidationError(nil, core.FieldError{Field: "subjectId", Error: unknownSubjectText})
		}
		taken := make(map[string]bool, len(d.Timetable))
		for _, e := range d.Timetable {
			taken[e.ID] = true
		}
		entry = TimetableEntry{
			ID:        newID(taken),
			SubjectID: ne.SubjectID,
			Day:       ne.Day,
			StartTime: ne.StartTime,
			EndTime:   ne.EndTime,
		}
		if ne.Room != "" {
			entry.Room.SetValid(ne.Room)
		}
		d.Timetable = append(d.Timetable, entry)
		return nil
	})
	if err != nil {
		return TimetableEntry{}, err
	}
	return entry, nil
}

func (svc *Service) DeleteEntry(ctx context.Context, id string) error {
	return svc.update(ctx, func(d *UserData) error {
		idx := d.entryIndex(id)
		if idx < 0 {
			return ErrEntryNotFound
		}
		d.Timetable = append(d.Timetable[:idx], d.Timetable[idx+1:]...)
		return nil
	})
}

func (svc *Service) Settings() Settings {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.data.Settings
}

func (svc *Service) UpdateSettings(ctx context.Context, us UpdateSettings) (Settings, error) {
	var settings Settings
	err := svc.update(ctx, func(d *UserData) error {
		if err := us.Validate(d.Settings, svc.validate); err != nil {
			return err
		}
		d.Settings.UserName = us.UserName
		d.Settings.GlobalTarget = *us.GlobalTarget
		settings = d.Settings
		return nil
	})
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Replace swaps the whole state for data, e.g. on import.
func (svc *Service) Replace(ctx context.Context, data UserData) error {
	if err := data.Check(); err != nil {
		return err
	}
	data = data.Clone()
	normalize(&data)
	return svc.update(ctx, func(d *UserData) error {
		*d = data
		return nil
	})
}

// Reset restores the starter dataset.
func (svc *Service) Reset(ctx context.Context) error {
	return svc.Replace(ctx, StarterData())
}

// newID draws ids until one is not taken.
func newID(taken map[string]bool) string {
	for {
		if id := NewIDFunc(); id != "" && !taken[id] {
			return id
		}
	}
}

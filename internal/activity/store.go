package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Flyrell/daygrid/internal/logging"
	"github.com/Flyrell/daygrid/internal/schedule"
)

// ErrNotFound is returned when no activity file exists for an ID.
var ErrNotFound = errors.New("not found")

const fileExt = ".json"

// Store persists activities as one JSON file per activity in a directory.
type Store struct {
	dir      string
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewStore returns a store rooted at dir. The directory is created on the
// first write.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{
		dir:      dir,
		log:      logger.Named("store"),
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithClock replaces the clock used for IDs and timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

// Create assigns an ID when a has none, stamps its timestamps, validates it
// and writes it.
func (s *Store) Create(a schedule.Activity) (schedule.Activity, error) {
	now := s.now()
	if a.ID == "" {
		id, err := s.freeID(a.Title, now)
		if err != nil {
			return schedule.Activity{}, err
		}
		a.ID = id
	} else if _, err := os.Stat(s.path(a.ID)); err == nil {
		return schedule.Activity{}, fmt.Errorf("activity '%s' already exists", a.ID)
	}
	if a.Recurrence == "" {
		a.Recurrence = schedule.RecurNone
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.check(a); err != nil {
		return schedule.Activity{}, err
	}
	if err := s.write(a); err != nil {
		return schedule.Activity{}, err
	}
	s.log.Debug("activity created", zap.String("id", a.ID), zap.String("slot", slotOf(a).String()))
	return a, nil
}

// Update replaces an existing activity.
func (s *Store) Update(a schedule.Activity) (schedule.Activity, error) {
	prev, err := s.Get(a.ID)
	if err != nil {
		return schedule.Activity{}, err
	}
	if a.Recurrence == "" {
		a.Recurrence = schedule.RecurNone
	}
	a.CreatedAt = prev.CreatedAt
	a.UpdatedAt = s.now()

	if err := s.check(a); err != nil {
		return schedule.Activity{}, err
	}
	if err := s.write(a); err != nil {
		return schedule.Activity{}, err
	}
	s.log.Debug("activity updated", zap.String("id", a.ID))
	return a, nil
}

// ApplyReposition moves one activity to the times of slot. Only StartTime and
// EndTime change; the scheduled date stays as it is so that a moved
// occurrence shifts its whole series. Nothing is written when the slot is
// invalid or the write fails.
func (s *Store) ApplyReposition(id string, slot schedule.Slot) (schedule.Activity, error) {
	a, err := s.Get(id)
	if err != nil {
		return schedule.Activity{}, err
	}
	moved := a
	moved.StartTime = slot.Start
	moved.EndTime = slot.End
	if _, _, err := moved.Range(); err != nil {
		return schedule.Activity{}, fmt.Errorf("repositioning '%s': %w", id, err)
	}

	updated, err := s.Update(moved)
	if err != nil {
		return schedule.Activity{}, fmt.Errorf("repositioning '%s': %w", id, err)
	}
	s.log.Info("activity repositioned",
		zap.String("id", id),
		zap.String("from", a.StartTime+"-"+a.EndTime),
		zap.String("to", slot.Start+"-"+slot.End),
	)
	return updated, nil
}

// Get reads one activity by ID.
func (s *Store) Get(id string) (schedule.Activity, error) {
	if !validID(id) {
		return schedule.Activity{}, fmt.Errorf("activity '%s' %w", id, ErrNotFound)
	}
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return schedule.Activity{}, fmt.Errorf("activity '%s' %w", id, ErrNotFound)
	}
	if err != nil {
		return schedule.Activity{}, err
	}

	var a schedule.Activity
	if err := json.Unmarshal(data, &a); err != nil {
		return schedule.Activity{}, fmt.Errorf("reading activity '%s': %w", id, err)
	}
	return a, nil
}

// List reads every activity in the store, ordered by date, start time and ID.
// Files that cannot be read or decoded are logged and skipped.
func (s *Store) List() ([]schedule.Activity, error) {
	files, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var activities []schedule.Activity
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != fileExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.log.Warn("skipping unreadable activity file", zap.String("file", name), zap.Error(err))
			continue
		}
		var a schedule.Activity
		if err := json.Unmarshal(data, &a); err != nil {
			s.log.Warn("skipping corrupt activity file", zap.String("file", name), zap.Error(err))
			continue
		}
		activities = append(activities, a)
	}

	sort.Slice(activities, func(i, j int) bool {
		a, b := activities[i], activities[j]
		if c := a.ScheduledDate.Compare(b.ScheduledDate); c != 0 {
			return c < 0
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return activities, nil
}

// Delete removes an activity file.
func (s *Store) Delete(id string) error {
	if !validID(id) {
		return fmt.Errorf("activity '%s' %w", id, ErrNotFound)
	}
	err := os.Remove(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("activity '%s' %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	s.log.Debug("activity deleted", zap.String("id", id))
	return nil
}

func (s *Store) check(a schedule.Activity) error {
	if !validID(a.ID) {
		return fmt.Errorf("invalid activity: bad id %q", a.ID)
	}
	if err := s.validate.Struct(a); err != nil {
		return fmt.Errorf("invalid activity: %w", err)
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("invalid activity: %w", err)
	}
	return nil
}

// freeID derives an ID from title and now, reseeding on the rare collision.
func (s *Store) freeID(title string, now time.Time) (string, error) {
	for i := 0; i < 16; i++ {
		id := NewID(title, now.Add(time.Duration(i)))
		if _, err := os.Stat(s.path(id)); errors.Is(err, os.ErrNotExist) {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not allocate an id for %q", title)
}

// write stores a through a temp file and rename so a failed write never
// leaves a half-written activity behind.
func (s *Store) write(a schedule.Activity) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-"+a.ID+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing activity '%s': %w", a.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing activity '%s': %w", a.ID, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, s.path(a.ID)); err != nil {
		return fmt.Errorf("writing activity '%s': %w", a.ID, err)
	}
	return nil
}

func slotOf(a schedule.Activity) schedule.Slot {
	return schedule.Slot{Date: a.ScheduledDate, Start: a.StartTime, End: a.EndTime}
}

// Package store owns the local birthday list: an ordered JSON array persisted
// in the user data directory. It is the single source of truth for what
// should exist on the remote calendar; the sync engine only ever reads it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
	"github.com/pwalczyk/gcal-birthdays/internal/dates"
)

// Record is one person in the birthday list. Date uses the "2006-01-02"
// layout. Age is persisted so the data file stays human-readable, but it is
// derived data: it is recomputed on every load and never trusted as
// authoritative.
type Record struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Age  string `json:"age"`
}

// BirthDate parses the stored date string.
func (r Record) BirthDate() (time.Time, error) {
	t, err := time.Parse(config.DateFormatFullDash, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return t, nil
}

// Store holds the in-memory list and its backing file.
type Store struct {
	path    string
	records []Record
}

// Open loads the data file at path, recomputes all ages against "now", and
// rewrites the file when any age changed. A missing or corrupt file yields an
// empty list, which is persisted immediately so later saves cannot fail on a
// missing directory entry.
func Open(path string, now time.Time) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("%s: %w", config.ErrDataLoad, err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		// A corrupt file is replaced by an empty list rather than
		// blocking startup.
		slog.Warn(config.ErrDataLoad,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyError, err,
		)
		s.records = nil
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	if s.recalculateAges(now) {
		if err := s.Save(); err != nil {
			return nil, err
		}
		slog.Debug(config.MsgAgesRecalculated,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyCount, len(s.records),
		)
	}
	return s, nil
}

// recalculateAges refreshes the derived Age field and reports whether
// anything changed. Records with unparseable dates get age "0".
func (s *Store) recalculateAges(now time.Time) bool {
	changed := false
	for i := range s.records {
		age := "0"
		if birth, err := s.records[i].BirthDate(); err == nil {
			age = strconv.Itoa(dates.Age(birth, now))
		}
		if s.records[i].Age != age {
			s.records[i].Age = age
			changed = true
		}
	}
	return changed
}

// Save writes the current list to disk.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.records, "", "    ")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDataSave, err)
	}
	if err := os.WriteFile(s.path, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDataSave, err)
	}
	return nil
}

// List returns the records in their current order. The slice is a copy so
// callers cannot mutate the store through it.
func (s *Store) List() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Add validates, appends, and persists a new record.
func (s *Store) Add(name, date string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New(config.ErrNameEmpty)
	}

	birth, err := time.Parse(config.DateFormatFullDash, date)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	if birth.Year() < config.MinBirthYear {
		return errors.New(config.ErrDateTooOld)
	}
	if birth.After(now) {
		return errors.New(config.ErrDateInFuture)
	}

	s.records = append(s.records, Record{
		Name: name,
		Date: birth.Format(config.DateFormatFullDash),
		Age:  strconv.Itoa(dates.Age(birth, now)),
	})
	return s.Save()
}

// Contains reports whether a record with the same name and date exists.
// Used by the vCard importer to avoid piling up duplicates.
func (s *Store) Contains(name, date string) bool {
	name = strings.TrimSpace(name)
	for _, r := range s.records {
		if r.Name == name && r.Date == date {
			return true
		}
	}
	return false
}

// Remove deletes the record at the given zero-based index and persists.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.records) {
		return errors.New(config.ErrIndexRange)
	}
	s.records = append(s.records[:index], s.records[index+1:]...)
	return s.Save()
}

// SortByNearest orders records by days until the next birthday, soonest
// first. The sort is stable so equal keys keep their input order.
func (s *Store) SortByNearest(now time.Time) error {
	sort.SliceStable(s.records, func(i, j int) bool {
		return daysKey(s.records[i], now) < daysKey(s.records[j], now)
	})
	return s.Save()
}

func daysKey(r Record, now time.Time) int {
	birth, err := r.BirthDate()
	if err != nil {
		// Unparseable dates sink to the end instead of aborting the sort.
		return int(^uint(0) >> 1)
	}
	return dates.DaysUntil(birth, now)
}

// SortChronological orders records by (month, day) ignoring the year,
// using the trailing "MM-DD" of the stored date string. Stable.
func (s *Store) SortChronological() error {
	sort.SliceStable(s.records, func(i, j int) bool {
		return dates.ChronoKey(s.records[i].Date) < dates.ChronoKey(s.records[j].Date)
	})
	return s.Save()
}

// Package store presents the remote worksheet as an ordered sequence of
// task records and applies single-row mutations positionally.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkellner/seamplan/pkg/model"
)

// HeaderOffset converts a 0-based record index into the 1-based physical
// row number: row 1 is the header, records start at row 2.
const HeaderOffset = 2

// RowAPI is the raw row-oriented surface of the backing table. Row numbers
// are 1-based physical positions including the header row.
type RowAPI interface {
	Rows(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []interface{}) error
	Update(ctx context.Context, rowNum int, row []interface{}) error
	Delete(ctx context.Context, rowNum int) error
}

// ErrTaskNotFound is returned when no row carries the requested task name.
var ErrTaskNotFound = errors.New("task not found")

// MissingColumnsError reports every required column absent from the
// normalized header row. The task view must not render at all when this is
// returned.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns in sheet: %s", strings.Join(e.Columns, ", "))
}

// Store is the task store adapter. It keeps no state between calls: every
// read goes back to the remote table.
type Store struct {
	api RowAPI
	now func() time.Time
}

func New(api RowAPI) *Store {
	return NewWithClock(api, time.Now)
}

// NewWithClock lets tests pin the date used for last-updated stamps.
func NewWithClock(api RowAPI, now func() time.Time) *Store {
	return &Store{api: api, now: now}
}

// Load re-reads the whole table and returns all records in row order.
// Headers are normalized before matching; if any required column is missing
// no records are produced.
func (s *Store) Load(ctx context.Context) ([]model.Task, error) {
	rows, err := s.api.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: model.Columns}
	}

	headers := make([]string, len(rows[0]))
	present := make(map[string]bool, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = model.NormalizeHeader(h)
		present[headers[i]] = true
	}

	var missing []string
	for _, col := range model.Columns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	tasks := make([]model.Task, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		tasks = append(tasks, model.FromRecord(rec))
	}
	return tasks, nil
}

// Append adds the task as a new final row, stamping last-updated with the
// current date. No uniqueness check on the task name. On failure nothing is
// retained locally; the next view reloads from scratch.
func (s *Store) Append(ctx context.Context, t model.Task) error {
	t.LastUpdated = s.now()
	if err := s.api.Append(ctx, t.Row()); err != nil {
		return fmt.Errorf("appending task '%s': %w", t.Name, err)
	}
	return nil
}

// ReplaceAt overwrites the row at the given physical position with the
// task, stamping last-updated. The write is a single in-place update, so a
// partial failure cannot lose the row.
func (s *Store) ReplaceAt(ctx context.Context, pos int, t model.Task) error {
	t.LastUpdated = s.now()
	if err := s.api.Update(ctx, pos, t.Row()); err != nil {
		return fmt.Errorf("replacing row %d: %w", pos, err)
	}
	return nil
}

// DeleteAt removes the row at the given physical position. Last-updated is
// never touched on delete.
func (s *Store) DeleteAt(ctx context.Context, pos int) error {
	if err := s.api.Delete(ctx, pos); err != nil {
		return fmt.Errorf("deleting row %d: %w", pos, err)
	}
	return nil
}

// PositionByName reloads the table and resolves a task name to the physical
// row of the FIRST record carrying that name. The match count is returned
// so callers can report ambiguity: the store does not track record
// identity, and with duplicate names the first row wins whether or not it
// is the one the user selected.
func (s *Store) PositionByName(ctx context.Context, name string) (pos int, matches int, err error) {
	tasks, err := s.Load(ctx)
	if err != nil {
		return 0, 0, err
	}

	for i, t := range tasks {
		if t.Name == name {
			if matches == 0 {
				pos = i + HeaderOffset
			}
			matches++
		}
	}
	if matches == 0 {
		return 0, 0, ErrTaskNotFound
	}
	return pos, matches, nil
}

// Filter returns the subset of tasks matching the selected statuses and
// categories, preserving load order. An empty selection places no
// restriction. Filtering is for display only; it never mutates the backing
// store and filtered indexes must never be used for position resolution.
func Filter(tasks []model.Task, statuses, categories []string) []model.Task {
	filtered := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if len(statuses) > 0 && !containsString(statuses, t.Status) {
			continue
		}
		if len(categories) > 0 && !containsString(categories, t.Category) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

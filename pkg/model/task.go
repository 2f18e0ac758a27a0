package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	CategoryStitching = "Stitching"
	CategoryCustom    = "Custom/Alteration"
	CategoryLabelling = "Labelling"

	StatusWorking = "Working"
	StatusDone    = "Done"
	StatusStuck   = "Stuck"

	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// DateLayout is the format for every date cell in the sheet.
const DateLayout = "2006-01-02"

// Columns lists the required sheet headers in schema order. The header row
// must contain every one of these (after normalization) for the task view
// to render at all.
var Columns = []string{
	"Task Name",
	"Category",
	"Quantity",
	"Seamstress",
	"Status",
	"Priority",
	"Cost",
	"Expected File Upload",
	"Delivered File Upload",
	"Timeline",
	"Last Updated",
}

// Task is one production task, one row in the worksheet.
type Task struct {
	Name          string    `json:"task_name"`
	Category      string    `json:"category"`
	Quantity      int       `json:"quantity"`
	Seamstress    string    `json:"seamstress"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	Cost          float64   `json:"cost"`
	ExpectedFile  string    `json:"expected_file_upload,omitempty"`
	DeliveredFile string    `json:"delivered_file_upload,omitempty"`
	Timeline      time.Time `json:"timeline"`
	LastUpdated   time.Time `json:"last_updated"`
}

func Categories() []string {
	return []string{CategoryStitching, CategoryCustom, CategoryLabelling}
}

func Statuses() []string {
	return []string{StatusWorking, StatusDone, StatusStuck}
}

func Priorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh}
}

// NormalizeHeader trims and title-cases a header cell so that matching is
// case and whitespace insensitive ("  TASK NAME " == "Task Name").
func NormalizeHeader(h string) string {
	return cases.Title(language.English).String(strings.TrimSpace(h))
}

// FromRecord builds a Task from a header-keyed record. Parsing is lenient:
// unparseable numbers become zero and unparseable dates become the zero
// time, so a malformed cell reads as blank instead of blocking the whole
// sheet from loading.
func FromRecord(rec map[string]string) Task {
	qty, _ := strconv.Atoi(strings.TrimSpace(rec["Quantity"]))
	cost, _ := strconv.ParseFloat(strings.TrimSpace(rec["Cost"]), 64)
	return Task{
		Name:          rec["Task Name"],
		Category:      rec["Category"],
		Quantity:      qty,
		Seamstress:    rec["Seamstress"],
		Status:        rec["Status"],
		Priority:      rec["Priority"],
		Cost:          cost,
		ExpectedFile:  rec["Expected File Upload"],
		DeliveredFile: rec["Delivered File Upload"],
		Timeline:      parseDate(rec["Timeline"]),
		LastUpdated:   parseDate(rec["Last Updated"]),
	}
}

func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Row returns the cell values in schema order, dates rendered as
// YYYY-MM-DD and zero dates as empty cells.
func (t Task) Row() []interface{} {
	return []interface{}{
		t.Name,
		t.Category,
		strconv.Itoa(t.Quantity),
		t.Seamstress,
		t.Status,
		t.Priority,
		strconv.FormatFloat(t.Cost, 'f', -1, 64),
		t.ExpectedFile,
		t.DeliveredFile,
		formatDate(t.Timeline),
		formatDate(t.LastUpdated),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Validate checks a user-submitted task. Loaded rows are never validated
// this strictly; only create and update input is.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("task name is required")
	}
	if !contains(Categories(), t.Category) {
		return fmt.Errorf("unknown category '%s'", t.Category)
	}
	if t.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	if !contains(Statuses(), t.Status) {
		return fmt.Errorf("unknown status '%s'", t.Status)
	}
	if !contains(Priorities(), t.Priority) {
		return fmt.Errorf("unknown priority '%s'", t.Priority)
	}
	if t.Cost < 0 {
		return fmt.Errorf("cost must not be negative")
	}
	if t.Timeline.IsZero() {
		return fmt.Errorf("due date is required")
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

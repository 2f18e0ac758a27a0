// Package dashboard computes the summary views: status counts, due-date
// and seamstress breakdowns, and the overdue task list. Everything is a
// stateless pass over an already-loaded record slice.
package dashboard

import (
	"sort"
	"time"

	"github.com/dkellner/seamplan/pkg/model"
)

// Summary holds the headline metrics shown at the top of the dashboard.
type Summary struct {
	Total   int `json:"total"`
	Done    int `json:"done"`
	Working int `json:"working"`
	Stuck   int `json:"stuck"`
}

func Summarize(tasks []model.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case model.StatusDone:
			s.Done++
		case model.StatusWorking:
			s.Working++
		case model.StatusStuck:
			s.Stuck++
		}
	}
	return s
}

// Slice is one wedge of the status pie chart.
type Slice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// StatusBreakdown returns one slice per known status, in a fixed order so
// the chart is stable across reloads.
func StatusBreakdown(tasks []model.Task) []Slice {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Status]++
	}

	slices := make([]Slice, 0, len(model.Statuses()))
	for _, status := range model.Statuses() {
		slices = append(slices, Slice{
			Label: status,
			Count: counts[status],
			Color: SeriesColor(status),
		})
	}
	return slices
}

// Bucket is one column of a stacked histogram: a key (due date or
// seamstress) with per-status counts.
type Bucket struct {
	Key    string         `json:"key"`
	Counts map[string]int `json:"counts"`
}

// DueHistogram groups tasks by due date, keys sorted ascending. Tasks with
// no due date are left out.
func DueHistogram(tasks []model.Task) []Bucket {
	buckets := make(map[string]map[string]int)
	for _, t := range tasks {
		if t.Timeline.IsZero() {
			continue
		}
		key := t.Timeline.Format(model.DateLayout)
		if buckets[key] == nil {
			buckets[key] = make(map[string]int)
		}
		buckets[key][t.Status]++
	}
	return sortBuckets(buckets)
}

// SeamstressHistogram groups tasks by seamstress, keys sorted
// alphabetically. Unassigned tasks bucket under "(unassigned)".
func SeamstressHistogram(tasks []model.Task) []Bucket {
	buckets := make(map[string]map[string]int)
	for _, t := range tasks {
		key := t.Seamstress
		if key == "" {
			key = "(unassigned)"
		}
		if buckets[key] == nil {
			buckets[key] = make(map[string]int)
		}
		buckets[key][t.Status]++
	}
	return sortBuckets(buckets)
}

func sortBuckets(buckets map[string]map[string]int) []Bucket {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{Key: k, Counts: buckets[k]})
	}
	return out
}

// Overdue returns tasks whose due date has passed, preserving load order.
// A task with no due date is never overdue.
func Overdue(tasks []model.Task, now time.Time) []model.Task {
	var overdue []model.Task
	for _, t := range tasks {
		if !t.Timeline.IsZero() && t.Timeline.Before(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

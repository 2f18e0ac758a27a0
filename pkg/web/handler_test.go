package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkellner/seamplan/pkg/model"
	"github.com/dkellner/seamplan/pkg/store"
)

var testToday = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

// fakeSheet mirrors the worksheet's positional semantics in memory.
type fakeSheet struct {
	rows [][]string
}

func (f *fakeSheet) Rows(ctx context.Context) ([][]string, error) {
	out := make([][]string, len(f.rows))
	for i, r := range f.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (f *fakeSheet) Append(ctx context.Context, row []interface{}) error {
	f.rows = append(f.rows, toStrings(row))
	return nil
}

func (f *fakeSheet) Update(ctx context.Context, rowNum int, row []interface{}) error {
	f.rows[rowNum-1] = toStrings(row)
	return nil
}

func (f *fakeSheet) Delete(ctx context.Context, rowNum int) error {
	f.rows = append(f.rows[:rowNum-1], f.rows[rowNum:]...)
	return nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func taskRow(name, category, qty, seamstress, status, priority, cost, due, updated string) []string {
	return []string{name, category, qty, seamstress, status, priority, cost, "", "", due, updated}
}

func newFakeSheet(records ...[]string) *fakeSheet {
	rows := [][]string{append([]string(nil), model.Columns...)}
	rows = append(rows, records...)
	return &fakeSheet{rows: rows}
}

func newTestApp(sheet *fakeSheet) *echo.Echo {
	e := echo.New()
	e.Renderer = NewRenderer()
	e.Use(RequestID())
	Register(e, NewHandler(store.NewWithClock(sheet, func() time.Time { return testToday })))
	return e
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTasksPageRendersRecords(t *testing.T) {
	sheet := newFakeSheet(
		taskRow("Hem dress", "Custom/Alteration", "1", "Priya", "Working", "High", "45.5", "2026-09-10", "2026-08-01"),
	)
	e := newTestApp(sheet)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Hem dress") {
		t.Error("expected task name in rendered page")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected a request id header")
	}
}

func TestTasksPageFilterByStatus(t *testing.T) {
	sheet := newFakeSheet(
		taskRow("Alice", "Stitching", "1", "Alice", "Working", "Low", "1", "2026-09-01", "2026-08-01"),
		taskRow("Bob", "Stitching", "2", "Bob", "Done", "Low", "2", "2026-09-02", "2026-08-02"),
	)
	e := newTestApp(sheet)

	req := httptest.NewRequest(http.MethodGet, "/tasks?status=Done", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `value="Bob"`) {
		t.Error("expected Bob in filtered view")
	}
	if strings.Contains(body, `value="Alice"`) {
		t.Error("did not expect Alice in Done-filtered view")
	}
}

func TestTasksPageSchemaErrorHaltsRender(t *testing.T) {
	sheet := newFakeSheet(
		taskRow("Hem dress", "Custom/Alteration", "1", "Priya", "Working", "High", "45.5", "2026-09-10", "2026-08-01"),
	)
	sheet.rows[0] = []string{"Task Name", "Category"} // schema broken

	e := newTestApp(sheet)
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing columns") {
		t.Error("expected missing-columns message")
	}
	if strings.Contains(rec.Body.String(), "Hem dress") {
		t.Error("expected no partial render of task data")
	}
}

func TestCreateTaskAppendsAndRedirects(t *testing.T) {
	sheet := newFakeSheet()
	e := newTestApp(sheet)

	rec := postForm(e, "/tasks", url.Values{
		"task_name": {"Stitch uniforms"},
		"category":  {"Stitching"},
		"quantity":  {"12"},
		"status":    {"Working"},
		"priority":  {"Medium"},
		"cost":      {"240"},
		"timeline":  {"2026-10-01"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}
	if len(sheet.rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(sheet.rows))
	}
	added := sheet.rows[1]
	if added[0] != "Stitch uniforms" || added[2] != "12" {
		t.Errorf("unexpected appended row: %v", added)
	}
	if added[10] != testToday.Format(model.DateLayout) {
		t.Errorf("expected last-updated stamped %s, got %s", testToday.Format(model.DateLayout), added[10])
	}
}

func TestCreateTaskRejectsInvalidInput(t *testing.T) {
	sheet := newFakeSheet()
	e := newTestApp(sheet)

	rec := postForm(e, "/tasks", url.Values{
		"task_name": {"Bad quantity"},
		"category":  {"Stitching"},
		"quantity":  {"zero"},
		"status":    {"Working"},
		"priority":  {"Low"},
		"cost":      {"1"},
		"timeline":  {"2026-10-01"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(sheet.rows) != 1 {
		t.Error("expected no row appended on validation failure")
	}
}

func TestUpdateTaskReplacesResolvedRow(t *testing.T) {
	sheet := newFakeSheet(
		taskRow("Hem dress", "Custom/Alteration", "1", "Priya", "Working", "High", "45.5", "2026-09-10", "2026-08-01"),
		taskRow("Label batch", "Labelling", "40", "Mona", "Done", "Low", "12", "2026-09-01", "2026-08-02"),
	)
	e := newTestApp(sheet)

	rec := postForm(e, "/tasks/update", url.Values{
		"original_name": {"Hem dress"},
		"task_name":     {"Hem dress"},
		"category":      {"Custom/Alteration"},
		"quantity":      {"1"},
		"seamstress":    {"Priya"},
		"status":        {"Done"},
		"priority":      {"High"},
		"cost":          {"45.5"},
		"timeline":      {"2026-09-10"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if sheet.rows[1][4] != "Done" {
		t.Errorf("expected row 2 status Done, got %s", sheet.rows[1][4])
	}
	if sheet.rows[1][10] != testToday.Format(model.DateLayout) {
		t.Errorf("expected last-updated restamped, got %s", sheet.rows[1][10])
	}
	if sheet.rows[2][0] != "Label batch" {
		t.Errorf("neighboring row disturbed: %v", sheet.rows[2])
	}
}

// The Done-filtered view shows only Bob; deleting him must remove physical
// row 3, leaving Alice and Carol aligned.
func TestDeleteTaskUsesRawPosition(t *testing.T) {
	sheet := newFakeSheet(
		taskRow("Alice", "Stitching", "1", "Alice", "Working", "Low", "1", "2026-09-01", "2026-08-01"),
		taskRow("Bob", "Stitching", "2", "Bob", "Done", "Low", "2", "2026-09-02", "2026-08-02"),
		taskRow("Carol", "Stitching", "3", "Carol", "Stuck", "Low", "3", "2026-09-03", "2026-08-03"),
	)
	e := newTestApp(sheet)

	rec := postForm(e, "/tasks/delete", url.Values{"original_name": {"Bob"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if len(sheet.rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(sheet.rows))
	}
	if sheet.rows[1][0] != "Alice" || sheet.rows[2][0] != "Carol" {
		t.Errorf("expected [Alice, Carol], got [%s, %s]", sheet.rows[1][0], sheet.rows[2][0])
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	sheet := newFakeSheet()
	e := newTestApp(sheet)

	rec := postForm(e, "/tasks/delete", url.Values{"original_name": {"No such task"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDashboardDataJSON(t *testing.T) {
	sheet := newFakeSheet(
		taskRow("Alice", "Stitching", "1", "Alice", "Working", "Low", "1", "2026-09-01", "2026-08-01"),
		taskRow("Bob", "Stitching", "2", "Bob", "Done", "Low", "2", "2026-09-02", "2026-08-02"),
	)
	e := newTestApp(sheet)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Summary struct {
			Total int `json:"total"`
			Done  int `json:"done"`
		} `json:"summary"`
		StatusBreakdown []struct {
			Label string `json:"label"`
			Count int    `json:"count"`
		} `json:"status_breakdown"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Summary.Total != 2 || payload.Summary.Done != 1 {
		t.Errorf("unexpected summary: %+v", payload.Summary)
	}
	if len(payload.StatusBreakdown) != 3 {
		t.Errorf("expected 3 status slices, got %d", len(payload.StatusBreakdown))
	}
}

func TestListTasksJSON(t *testing.T) {
	sheet := newFakeSheet(
		taskRow("Alice", "Stitching", "1", "Alice", "Working", "Low", "1", "2026-09-01", "2026-08-01"),
		taskRow("Bob", "Stitching", "2", "Bob", "Done", "Low", "2", "2026-09-02", "2026-08-02"),
	)
	e := newTestApp(sheet)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?status=Done", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var payload struct {
		Count int          `json:"count"`
		Tasks []model.Task `json:"tasks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Count != 1 || payload.Tasks[0].Name != "Bob" {
		t.Errorf("expected filtered list [Bob], got %+v", payload)
	}
}

package sheets

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client is a Google Sheets client bound to a single worksheet.
type Client struct {
	srv           *sheets.Service
	spreadsheetID string
	title         string
	sheetID       int64
}

// NewClient creates a client for one worksheet, located by title. The
// numeric sheet id is captured up front because row deletion addresses the
// sheet by id, not by title.
func NewClient(ctx context.Context, httpClient *http.Client, spreadsheetID, title string) (*Client, error) {
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}

	doc, err := srv.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to open spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return &Client{
				srv:           srv,
				spreadsheetID: spreadsheetID,
				title:         title,
				sheetID:       sh.Properties.SheetId,
			}, nil
		}
	}

	return nil, fmt.Errorf("worksheet '%s' not found", title)
}

// Rows fetches every row of the worksheet, header row included, as strings.
func (c *Client) Rows(ctx context.Context) ([][]string, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, c.title).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read worksheet '%s': %w", c.title, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = fmt.Sprint(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

// Append adds one row after the last row with data.
func (c *Client) Append(ctx context.Context, row []interface{}) error {
	body := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, c.title, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to append row to '%s': %w", c.title, err)
	}
	return nil
}

// Update overwrites the row at the given 1-based position in place.
func (c *Client) Update(ctx context.Context, rowNum int, row []interface{}) error {
	body := &sheets.ValueRange{Values: [][]interface{}{row}}
	rng := fmt.Sprintf("%s!A%d", c.title, rowNum)
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, rng, body).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to update row %d of '%s': %w", rowNum, c.title, err)
	}
	return nil
}

// Delete removes the row at the given 1-based position. Rows below shift up.
func (c *Client) Delete(ctx context.Context, rowNum int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    c.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowNum - 1),
					EndIndex:   int64(rowNum),
				},
			},
		}},
	}
	_, err := c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to delete row %d of '%s': %w", rowNum, c.title, err)
	}
	return nil
}

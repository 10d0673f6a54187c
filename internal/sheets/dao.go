package sheets

import (
	"context"
	"fmt"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"openday/internal/models"
)

func (c *Client) readAll(ctx context.Context) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, a1(c.sheet, "A:Z")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s: %w", c.sheet, err)
	}
	return resp.Values, nil
}

// load reads the sheet and refreshes the cached column layout from its header row.
func (c *Client) load(ctx context.Context) ([][]interface{}, layout, error) {
	values, err := c.readAll(ctx)
	if err != nil {
		return nil, layout{}, err
	}
	l := defaultLayout()
	if len(values) > 0 {
		if parsed, ok := parseHeader(values[0]); ok {
			l = parsed
		}
	}
	c.mu.Lock()
	c.layout = l
	c.mu.Unlock()
	return values, l, nil
}

func (c *Client) appendRow(ctx context.Context, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, a1(c.sheet, "A:Z"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append: %w", err)
	}
	return nil
}

func (c *Client) updateRow(ctx context.Context, rowNum, width int, row []interface{}) error {
	rng := fmt.Sprintf("A%d:%s%d", rowNum, columnLetter(width), rowNum)
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, a1(c.sheet, rng), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update row %d: %w", rowNum, err)
	}
	return nil
}

func (c *Client) deleteRow(ctx context.Context, rowNum int) error {
	sheetID, err := c.resolveSheetID(ctx)
	if err != nil {
		return err
	}
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			DeleteDimension: &sheetsv4.DeleteDimensionRequest{
				Range: &sheetsv4.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowNum - 1),
					EndIndex:   int64(rowNum),
					// zero values are meaningful here
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	if _, err := c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: delete row %d: %w", rowNum, err)
	}
	return nil
}

// resolveSheetID finds the numeric id of the sheet by title; row deletion needs it.
func (c *Client) resolveSheetID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	if c.sheetID != nil {
		id := *c.sheetID
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	resp, err := c.srv.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: get spreadsheet: %w", err)
	}
	for _, s := range resp.Sheets {
		if s.Properties != nil && s.Properties.Title == c.sheet {
			id := s.Properties.SheetId
			c.mu.Lock()
			c.sheetID = &id
			c.mu.Unlock()
			return id, nil
		}
	}
	return 0, fmt.Errorf("sheets: sheet %q not found", c.sheet)
}

// ---------- Registrations ----------

// ListRegistrations returns the rows in sheet order. Row 1 is the header.
func (c *Client) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	values, l, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	regs := []models.Registration{}
	for i := 1; i < len(values); i++ {
		r, ok := l.decode(values[i])
		if !ok {
			continue
		}
		r.Row = i + 1 // sheet rows are 1-indexed
		regs = append(regs, r)
	}
	return regs, nil
}

func (c *Client) AppendRegistration(ctx context.Context, r models.Registration) error {
	c.mu.Lock()
	l := c.layout
	c.mu.Unlock()
	row, err := l.encode(r, nil)
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", r.Email, err)
	}
	return c.appendRow(ctx, row)
}

// ReplaceRegistration overwrites the first row for email in place, keeping its position.
func (c *Client) ReplaceRegistration(ctx context.Context, email string, r models.Registration) (bool, error) {
	values, l, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	rowNum := findRow(values, l, email)
	if rowNum == 0 {
		return false, nil
	}
	row, err := l.encode(r, values[rowNum-1])
	if err != nil {
		return false, fmt.Errorf("sheets: update row %d: %w", rowNum, err)
	}
	if err := c.updateRow(ctx, rowNum, len(row), row); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteRegistration removes the first row for email and no other.
func (c *Client) DeleteRegistration(ctx context.Context, email string) (bool, error) {
	values, l, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	rowNum := findRow(values, l, email)
	if rowNum == 0 {
		return false, nil
	}
	if err := c.deleteRow(ctx, rowNum); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureHeader writes the header row when the sheet is empty, and appends the
// titles of any missing columns to an existing header.
func (c *Client) EnsureHeader(ctx context.Context) error {
	values, _, err := c.load(ctx)
	if err != nil {
		return err
	}

	header := Header
	if len(values) > 0 {
		l, ok := parseHeader(values[0])
		if !ok {
			return fmt.Errorf("sheets: %s has no Email column in row 1", c.sheet)
		}
		missing := l.missing()
		if len(missing) == 0 {
			return nil
		}
		header = append([]interface{}{}, values[0]...)
		for _, col := range missing {
			header = append(header, Header[col])
		}
	}

	if err := c.updateRow(ctx, 1, len(header), header); err != nil {
		return fmt.Errorf("sheets: write header: %w", err)
	}
	_, _, err = c.load(ctx)
	return err
}

func findRow(values [][]interface{}, l layout, email string) int {
	key := models.NormalizeEmail(email)
	for i := 1; i < len(values); i++ {
		if models.NormalizeEmail(l.cell(values[i], colEmail)) == key && key != "" {
			return i + 1
		}
	}
	return 0
}

package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	sheet         string

	mu      sync.Mutex
	layout  layout
	sheetID *int64
}

// New accepts either a path to a service account JSON file or the JSON document itself.
func New(ctx context.Context, serviceAccount, spreadsheetID, sheet string) (*Client, error) {
	var cred option.ClientOption
	if strings.HasPrefix(strings.TrimSpace(serviceAccount), "{") {
		cred = option.WithCredentialsJSON([]byte(serviceAccount))
	} else {
		if _, err := os.Stat(serviceAccount); err != nil {
			return nil, fmt.Errorf("service account json: %w", err)
		}
		cred = option.WithCredentialsFile(serviceAccount)
	}
	return NewWithOptions(ctx, spreadsheetID, sheet, cred, option.WithScopes(sheetsv4.SpreadsheetsScope))
}

func NewWithOptions(ctx context.Context, spreadsheetID, sheet string, opts ...option.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}
	if sheet == "" {
		return nil, fmt.Errorf("sheet name is empty")
	}
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		layout:        defaultLayout(),
	}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

func (c *Client) Sheet() string { return c.sheet }

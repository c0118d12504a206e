package publisher

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"MarketScreener/internal/model"
)

// Service-account authorization covers both the sheet contents and the Drive
// lookup used to resolve the spreadsheet by title.
var scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

// SheetsPublisher replaces the contents of a named Google spreadsheet's first
// worksheet with the shortlist table. There is no retry: any auth or network
// failure propagates to the caller and aborts the run.
type SheetsPublisher struct {
	CredentialsFile  string
	SpreadsheetTitle string
}

// NewSheetsPublisher creates a publisher for the given spreadsheet title.
func NewSheetsPublisher(credentialsFile, spreadsheetTitle string) *SheetsPublisher {
	return &SheetsPublisher{
		CredentialsFile:  credentialsFile,
		SpreadsheetTitle: spreadsheetTitle,
	}
}

func (p *SheetsPublisher) services(ctx context.Context) (*sheets.Service, *drive.Service, error) {
	credBytes, err := os.ReadFile(p.CredentialsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credBytes, scopes...)
	if err != nil {
		return nil, nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	client := config.Client(ctx)

	sheetsSrv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("create sheets service: %w", err)
	}
	driveSrv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("create drive service: %w", err)
	}
	return sheetsSrv, driveSrv, nil
}

// findSpreadsheet resolves the spreadsheet id by exact title.
func (p *SheetsPublisher) findSpreadsheet(ctx context.Context, driveSrv *drive.Service) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		p.SpreadsheetTitle)
	list, err := driveSrv.Files.List().Q(query).PageSize(1).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("look up spreadsheet %q: %w", p.SpreadsheetTitle, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("spreadsheet %q not found", p.SpreadsheetTitle)
	}
	return list.Files[0].Id, nil
}

// Publish clears the first worksheet and writes the header plus all data
// rows starting at A1. A zero-row table still clears the sheet and writes
// the header.
func (p *SheetsPublisher) Publish(ctx context.Context, table model.ShortlistTable) error {
	sheetsSrv, driveSrv, err := p.services(ctx)
	if err != nil {
		return err
	}

	spreadsheetID, err := p.findSpreadsheet(ctx, driveSrv)
	if err != nil {
		return err
	}

	ss, err := sheetsSrv.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	if len(ss.Sheets) == 0 {
		return fmt.Errorf("spreadsheet %q has no worksheets", p.SpreadsheetTitle)
	}
	worksheet := ss.Sheets[0].Properties.Title

	if _, err := sheetsSrv.Spreadsheets.Values.Clear(spreadsheetID, worksheet, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear worksheet %q: %w", worksheet, err)
	}

	body := &sheets.ValueRange{Values: table.Rows()}
	resp, err := sheetsSrv.Spreadsheets.Values.Update(spreadsheetID, fmt.Sprintf("%s!A1", worksheet), body).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update worksheet %q: %w", worksheet, err)
	}
	if resp.HTTPStatusCode != 200 {
		return fmt.Errorf("invalid http status code: %v", resp.HTTPStatusCode)
	}
	return nil
}

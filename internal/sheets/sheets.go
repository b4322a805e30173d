// Package sheets implements the spreadsheet row source against the Google
// Sheets API.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/config"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/mapper"
)

// Source reads membership rows from one configured spreadsheet range.
type Source struct {
	log     *zap.SugaredLogger
	service *sheets.Service
	cfg     config.SheetsConfig
}

// New constructs a row source authenticated with a service-account file.
func New(ctx context.Context, log *zap.SugaredLogger, cfg *config.Config) (*Source, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.Sheets.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Source{
		log:     log.Named("sheets"),
		service: service,
		cfg:     cfg.Sheets,
	}, nil
}

// Rows fetches the configured range and returns its rows in sheet order.
func (s *Source) Rows(ctx context.Context) ([]entities.SheetRow, error) {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.cfg.SpreadsheetID, s.cfg.ReadRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", s.cfg.ReadRange, err)
	}

	rows := mapper.FromSheetValues(resp.Values)
	s.log.Infow("sheet rows fetched", "spreadsheet_id", s.cfg.SpreadsheetID, "rows", len(rows))
	return rows, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
)

type ReportServiceInterface interface {
	BuildInvoiceReport(ctx context.Context, from, to string) (*excelize.File, error)
}

type ReportService struct {
	invoiceRepo repositories.InvoiceRepositoryInterface
	logger      *zap.Logger
}

func NewReportService(invoiceRepo repositories.InvoiceRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{invoiceRepo: invoiceRepo, logger: logger}
}

// BuildInvoiceReport produces the invoice export workbook for the optional
// invoice-date range.
func (s *ReportService) BuildInvoiceReport(ctx context.Context, from, to string) (*excelize.File, error) {
	rows, err := s.invoiceRepo.ListForReport(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Invoices"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Invoice Date", "Address", "Client", "Work Order #", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	var totalAmount float64
	for rowIdx, row := range rows {
		values := []interface{}{row.InvoiceDate, row.JobAddress, row.JobClient, row.WorkOrderNumber, row.Amount}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		totalAmount += row.Amount
	}

	totalCell, _ := excelize.CoordinatesToCellName(5, len(rows)+2)
	labelCell, _ := excelize.CoordinatesToCellName(4, len(rows)+2)
	if err := f.SetCellValue(sheet, labelCell, "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, totalCell, totalAmount); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheet, "A", "E", 22); err != nil {
		return nil, err
	}

	s.logger.Info("invoice report built",
		zap.Int("rows", len(rows)),
		zap.String("range", fmt.Sprintf("%s..%s", from, to)))
	return f, nil
}

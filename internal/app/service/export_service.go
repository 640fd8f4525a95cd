package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/internal/storage"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"github.com/xuri/excelize/v2"
)

var ErrStorageUnavailable = errors.New("s3 storage is not configured")

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportResult 생성된 청구서 파일. Upload는 S3 업로드를 요청한 경우에만 채워진다.
type ExportResult struct {
	Filename string                `json:"filename"`
	Content  []byte                `json:"-"`
	Upload   *storage.UploadResult `json:"upload,omitempty"`
}

type ExportService interface {
	// MonthlyInvoices 월 청구서 엑셀을 만든다. upload가 참이면 S3에 올린다.
	MonthlyInvoices(ctx context.Context, year, month int, upload bool) (*ExportResult, error)
}

type exportService struct {
	customerRepo repository.CustomerRepository
	courseRepo   repository.CourseRepository
	billing      BillingService
	s3           *storage.S3Storage
}

// NewExportService s3에 nil을 넘기면 파일 생성만 가능하다
func NewExportService(
	customerRepo repository.CustomerRepository,
	courseRepo repository.CourseRepository,
	billing BillingService,
	s3 *storage.S3Storage,
) ExportService {
	return &exportService{
		customerRepo: customerRepo,
		courseRepo:   courseRepo,
		billing:      billing,
		s3:           s3,
	}
}

func (s *exportService) MonthlyInvoices(ctx context.Context, year, month int, upload bool) (*ExportResult, error) {
	if !util.ValidMonth(month) {
		return nil, ErrInvalidMonth
	}
	if upload && s.s3 == nil {
		return nil, ErrStorageUnavailable
	}

	customers, err := s.customerRepo.List()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%04d-%02d", year, month)
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"고객ID", "고객명", "코스", "당월 금액", "절사", "전월 이월", "당월 입금", "최종 청구액", "확정"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetColWidth(sheet, "B", "C", 16)
	f.SetColWidth(sheet, "D", "H", 12)

	row := 2
	for _, customer := range customers {
		summary, err := s.billing.Summary(customer.ID, year, month)
		if err != nil {
			logger.Warn("Skipping customer in invoice export", map[string]interface{}{
				"customer_id": customer.ID,
				"error":       err.Error(),
			})
			continue
		}

		values := []interface{}{
			customer.ID,
			customer.Name,
			courseName(customer),
			summary.RoundedBase,
			summary.RoundingApplied,
			summary.Carryover,
			summary.Payments,
			summary.FinalAmount,
			summary.Confirmed,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	result := &ExportResult{
		Filename: fmt.Sprintf("invoices-%04d-%02d.xlsx", year, month),
		Content:  buf.Bytes(),
	}

	if upload {
		uploaded, err := s.s3.Upload(ctx, "exports", result.Filename, xlsxContentType, buf)
		if err != nil {
			return nil, err
		}
		result.Upload = uploaded
	}

	logger.Info("Monthly invoice export generated", map[string]interface{}{
		"year":     year,
		"month":    month,
		"rows":     row - 2,
		"uploaded": upload,
	})
	return result, nil
}

func courseName(customer model.Customer) string {
	return customer.Course.Name
}

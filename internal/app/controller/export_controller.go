package controller

import (
	"fmt"
	"net/http"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	apperrors "github.com/JETKIDS/trae-milk2-sub000/internal/errors"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportController 청구서 파일 내보내기 컨트롤러
type ExportController struct {
	exportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// MonthlyInvoices 월 청구서 엑셀 다운로드. upload=true면 S3에 올리고 URL을 돌려준다.
// @Summary 월 청구서 엑셀 내보내기
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int true "연도"
// @Param month query int true "월 (1-12)"
// @Param upload query bool false "S3 업로드 여부"
// @Success 200 {object} map[string]interface{}
// @Router /api/exports/invoices [get]
func (ctrl *ExportController) MonthlyInvoices(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}
	upload := c.Query("upload") == "true"

	result, err := ctrl.exportService.MonthlyInvoices(c.Request.Context(), year, month, upload)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	if upload {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result.Upload,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

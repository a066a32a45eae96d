package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handleExport streams all stored invoices as an XLSX workbook.
func (s *Service) handleExport(c *gin.Context) {
	data, err := s.exporter.ExportInvoicesXLSX(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	name := fmt.Sprintf("invoices-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

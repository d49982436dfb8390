package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/placementlabs/cpms/internal/reports"
)

func (s *Server) handleDashboardStats(c *gin.Context) {
	stats, err := reports.Dashboard(s.db)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (s *Server) handleBranchPlacements(c *gin.Context) {
	data, err := reports.BranchPlacements(s.db)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (s *Server) handleCompanySelections(c *gin.Context) {
	data, err := reports.CompanySelections(s.db)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (s *Server) handleExportStudents(c *gin.Context) {
	rows, err := reports.ExportStudents(s.db)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/placementlabs/cpms/internal/auth"
	"github.com/placementlabs/cpms/internal/models"
)

// Router builds the gin engine with all API routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public auth endpoints.
	api.POST("/auth/register", s.handleRegisterAccount)
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("", auth.RequireAuth(s.cfg.JWTSecret))
	student := authed.Group("", auth.RequireRole(models.RoleStudent))
	admin := authed.Group("", auth.RequireRole(models.RoleAdmin))

	authed.GET("/auth/me", s.handleMe)

	// Companies (drives).
	authed.GET("/companies", s.handleListCompanies)
	authed.GET("/companies/:id", s.handleGetCompany)
	admin.POST("/companies", s.handleCreateCompany)
	admin.PATCH("/companies/:id", s.handleUpdateCompany)
	admin.DELETE("/companies/:id", s.handleDeleteCompany)
	admin.GET("/companies/stats/dashboard", s.handleAdminDashboard)

	// Drive registration.
	student.POST("/drives/:companyId/register", s.handleRegisterForDrive)
	admin.GET("/drives/:companyId/students", s.handleRegisteredStudents)

	// Selection rounds.
	admin.POST("/rounds/company/:companyId", s.handleCreateRound)
	authed.GET("/rounds/company/:companyId", s.handleRoundsForCompany)
	admin.PATCH("/rounds/:roundId/results", s.handleSetResult)

	// Students.
	student.GET("/students/profile", s.handleStudentProfile)
	student.PATCH("/students/profile", s.handleUpdateStudentProfile)
	student.GET("/students/stats", s.handleStudentStats)
	student.GET("/students/applications", s.handleStudentApplications)
	admin.GET("/students/all", s.handleAllStudents)
	admin.PATCH("/students/:id", s.handleCorrectStudent)

	// Reports.
	admin.GET("/reports/dashboard-stats", s.handleDashboardStats)
	admin.GET("/reports/branch-placements", s.handleBranchPlacements)
	admin.GET("/reports/company-selections", s.handleCompanySelections)
	admin.GET("/reports/export-students", s.handleExportStudents)

	return router
}

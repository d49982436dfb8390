package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/placementlabs/cpms/internal/auth"
	"github.com/placementlabs/cpms/internal/models"
	"github.com/placementlabs/cpms/internal/pipeline"
	"gorm.io/gorm"
)

// studentForPrincipal resolves the Student row owned by the authenticated
// user, or writes a 404 and returns false.
func (s *Server) studentForPrincipal(c *gin.Context) (models.Student, bool) {
	p, _ := auth.PrincipalFrom(c)
	var student models.Student
	if err := s.db.Where("user_id = ?", p.UserID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Student profile not found"})
		} else {
			s.fail(c, err)
		}
		return models.Student{}, false
	}
	return student, true
}

func (s *Server) handleRegisterForDrive(c *gin.Context) {
	student, ok := s.studentForPrincipal(c)
	if !ok {
		return
	}

	reg, err := pipeline.Register(s.db, student.ID, c.Param("companyId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Successfully registered for the drive.",
		"registration": reg,
	})
}

func (s *Server) handleRegisteredStudents(c *gin.Context) {
	rows, err := pipeline.RegisteredStudents(s.db, c.Param("companyId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(rows), "students": rows})
}

type createRoundRequest struct {
	Name        string    `json:"name" binding:"required"`
	RoundNumber int       `json:"roundNumber" binding:"required,min=1"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description"`
}

func (s *Server) handleCreateRound(c *gin.Context) {
	var req createRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	round, seeded, err := pipeline.CreateRound(s.db, c.Param("companyId"), pipeline.CreateRoundInput{
		RoundNumber: req.RoundNumber,
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": fmt.Sprintf("Round created and %d candidates seeded", seeded),
		"round":   round,
		"seeded":  seeded,
	})
}

func (s *Server) handleRoundsForCompany(c *gin.Context) {
	views, err := pipeline.RoundsForCompany(s.db, c.Param("companyId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(views), "rounds": views})
}

type setResultRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required"`
	Feedback  string `json:"feedback"`
}

func (s *Server) handleSetResult(c *gin.Context) {
	var req setResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := pipeline.SetResult(s.db, c.Param("roundId"), req.StudentID, req.Status, req.Feedback)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Candidate marked as %s", result.Status),
		"result":  result,
	})
}

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/placementlabs/cpms/internal/models"
	"github.com/placementlabs/cpms/internal/pipeline"
	"github.com/placementlabs/cpms/internal/reports"
	"gorm.io/gorm"
)

func (s *Server) handleStudentProfile(c *gin.Context) {
	student, ok := s.studentForPrincipal(c)
	if !ok {
		return
	}
	if err := s.db.Preload("User").First(&student, "id = ?", student.ID).Error; err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "student": student})
}

// studentPatchRequest covers the personal fields a student may edit. The
// academic eligibility fields are owned by the academic record and are only
// changed through administrative correction.
type studentPatchRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Phone           *string `json:"phone" binding:"omitempty,len=10,numeric"`
	Gender          *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	HasInternship   *bool   `json:"hasInternship"`
	InternshipNotes *string `json:"internshipDetails" binding:"omitempty,max=500"`
}

func (s *Server) handleUpdateStudentProfile(c *gin.Context) {
	student, ok := s.studentForPrincipal(c)
	if !ok {
		return
	}

	var req studentPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil && *req.FirstName != "" {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil && *req.LastName != "" {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.HasInternship != nil {
		updates["has_internship"] = *req.HasInternship
	}
	if req.InternshipNotes != nil {
		updates["internship_notes"] = *req.InternshipNotes
	}
	if len(updates) > 0 {
		if err := s.db.Model(&student).Updates(updates).Error; err != nil {
			s.fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "student": student})
}

func (s *Server) handleStudentStats(c *gin.Context) {
	student, ok := s.studentForPrincipal(c)
	if !ok {
		return
	}
	stats, err := reports.ForStudent(s.db, student.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (s *Server) handleStudentApplications(c *gin.Context) {
	student, ok := s.studentForPrincipal(c)
	if !ok {
		return
	}
	apps, err := pipeline.Applications(s.db, student.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "applications": apps})
}

// studentCorrectionRequest covers the academic-record fields only an
// administrator may change. The pipeline reads these for eligibility, so
// corrections go through this route rather than the student's own PATCH.
type studentCorrectionRequest struct {
	EnrollmentNumber *string  `json:"enrollmentNumber"`
	Branch           *string  `json:"branch"`
	TenthPercent     *float64 `json:"tenthPercent" binding:"omitempty,min=0,max=100"`
	TwelfthPercent   *float64 `json:"twelfthPercent" binding:"omitempty,min=0,max=100"`
	CGPA             *float64 `json:"cgpa" binding:"omitempty,min=0,max=10"`
	ActiveBacklogs   *bool    `json:"activeBacklogs"`
}

func (s *Server) handleCorrectStudent(c *gin.Context) {
	var student models.Student
	if err := s.db.Where("id = ?", c.Param("id")).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Student not found"})
			return
		}
		s.fail(c, err)
		return
	}

	var req studentCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.EnrollmentNumber != nil && *req.EnrollmentNumber != "" {
		updates["enrollment_number"] = *req.EnrollmentNumber
	}
	if req.Branch != nil && *req.Branch != "" {
		updates["branch"] = *req.Branch
	}
	if req.TenthPercent != nil {
		updates["tenth_percent"] = *req.TenthPercent
	}
	if req.TwelfthPercent != nil {
		updates["twelfth_percent"] = *req.TwelfthPercent
	}
	if req.CGPA != nil {
		updates["cgpa"] = *req.CGPA
	}
	if req.ActiveBacklogs != nil {
		updates["active_backlogs"] = *req.ActiveBacklogs
	}
	if len(updates) > 0 {
		if err := s.db.Model(&student).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Enrollment number already exists"})
				return
			}
			s.fail(c, err)
			return
		}
	}

	if err := s.db.First(&student, "id = ?", student.ID).Error; err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Student record updated", "student": student})
}

func (s *Server) handleAllStudents(c *gin.Context) {
	var students []models.Student
	if err := s.db.Preload("User").
		Order("created_at DESC").
		Find(&students).Error; err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(students), "students": students})
}

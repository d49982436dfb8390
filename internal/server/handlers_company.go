package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/placementlabs/cpms/internal/auth"
	"github.com/placementlabs/cpms/internal/models"
	"github.com/placementlabs/cpms/internal/reports"
	"gorm.io/gorm"
)

type companyRequest struct {
	Name               string    `json:"name" binding:"required"`
	JobRole            string    `json:"jobRole" binding:"required"`
	CTC                float64   `json:"ctc" binding:"min=0"`
	EligibilityCGPA    float64   `json:"eligibilityCGPA" binding:"min=0,max=10"`
	EligibilityPercent float64   `json:"eligibilityPercent" binding:"min=0,max=100"`
	AllowedBranches    string    `json:"allowedBranches" binding:"required"`
	DriveDate          time.Time `json:"driveDate" binding:"required"`
	Description        string    `json:"description"`
	Status             string    `json:"status" binding:"omitempty,oneof=UPCOMING ACTIVE COMPLETED"`
}

func (s *Server) handleCreateCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Status == "" {
		req.Status = models.DriveUpcoming
	}

	company := models.Company{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		JobRole:            req.JobRole,
		CTC:                req.CTC,
		EligibilityCGPA:    req.EligibilityCGPA,
		EligibilityPercent: req.EligibilityPercent,
		AllowedBranches:    req.AllowedBranches,
		DriveDate:          req.DriveDate,
		Description:        req.Description,
		Status:             req.Status,
	}
	if err := s.db.Create(&company).Error; err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Company created successfully",
		"company": company,
	})
}

func (s *Server) handleListCompanies(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)

	q := s.db.Model(&models.Company{})
	// Students only see drives they could still act on.
	if p.Role == models.RoleStudent {
		q = q.Where("status IN ?", []string{models.DriveUpcoming, models.DriveActive})
	}

	var companies []models.Company
	if err := q.Order("drive_date ASC").Find(&companies).Error; err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "companies": companies})
}

func (s *Server) handleGetCompany(c *gin.Context) {
	var company models.Company
	err := s.db.Preload("Rounds", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("round_number ASC")
	}).Where("id = ?", c.Param("id")).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company not found"})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "company": company})
}

type companyPatchRequest struct {
	Name               *string    `json:"name"`
	JobRole            *string    `json:"jobRole"`
	CTC                *float64   `json:"ctc" binding:"omitempty,min=0"`
	EligibilityCGPA    *float64   `json:"eligibilityCGPA" binding:"omitempty,min=0,max=10"`
	EligibilityPercent *float64   `json:"eligibilityPercent" binding:"omitempty,min=0,max=100"`
	AllowedBranches    *string    `json:"allowedBranches"`
	DriveDate          *time.Time `json:"driveDate"`
	Description        *string    `json:"description"`
	Status             *string    `json:"status" binding:"omitempty,oneof=UPCOMING ACTIVE COMPLETED"`
}

func (s *Server) handleUpdateCompany(c *gin.Context) {
	var company models.Company
	if err := s.db.Where("id = ?", c.Param("id")).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company not found"})
			return
		}
		s.fail(c, err)
		return
	}

	var req companyPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.JobRole != nil {
		updates["job_role"] = *req.JobRole
	}
	if req.CTC != nil {
		updates["ctc"] = *req.CTC
	}
	if req.EligibilityCGPA != nil {
		updates["eligibility_cgpa"] = *req.EligibilityCGPA
	}
	if req.EligibilityPercent != nil {
		updates["eligibility_percent"] = *req.EligibilityPercent
	}
	if req.AllowedBranches != nil {
		updates["allowed_branches"] = *req.AllowedBranches
	}
	if req.DriveDate != nil {
		updates["drive_date"] = *req.DriveDate
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) > 0 {
		if err := s.db.Model(&company).Updates(updates).Error; err != nil {
			s.fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Company updated", "company": company})
}

func (s *Server) handleDeleteCompany(c *gin.Context) {
	var company models.Company
	if err := s.db.Where("id = ?", c.Param("id")).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company not found"})
			return
		}
		s.fail(c, err)
		return
	}

	// Registrations, rounds and results go with the drive.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var roundIDs []string
		if err := tx.Model(&models.SelectionRound{}).
			Where("company_id = ?", company.ID).
			Pluck("id", &roundIDs).Error; err != nil {
			return err
		}
		if len(roundIDs) > 0 {
			if err := tx.Where("round_id IN ?", roundIDs).Delete(&models.RoundResult{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("company_id = ?", company.ID).Delete(&models.SelectionRound{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", company.ID).Delete(&models.DriveRegistration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&company).Error
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Company deleted"})
}

func (s *Server) handleAdminDashboard(c *gin.Context) {
	dash, err := reports.Admin(s.db)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": dash})
}

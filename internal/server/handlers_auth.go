package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/placementlabs/cpms/internal/auth"
	"github.com/placementlabs/cpms/internal/models"
	"gorm.io/gorm"
)

type registerAccountRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=STUDENT TPO_ADMIN"`

	// Student profile fields, required when role is STUDENT.
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	EnrollmentNumber string  `json:"enrollmentNumber"`
	Branch           string  `json:"branch"`
	TenthPercent     float64 `json:"tenth_percent" binding:"min=0,max=100"`
	TwelfthPercent   float64 `json:"twelfth_percent" binding:"min=0,max=100"`
	CGPA             float64 `json:"cgpa" binding:"min=0,max=10"`
}

func (s *Server) handleRegisterAccount(c *gin.Context) {
	var req registerAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if req.Role == models.RoleStudent {
		if req.FirstName == "" || req.LastName == "" || req.EnrollmentNumber == "" || req.Branch == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Student fields (firstName, lastName, enrollmentNumber, branch) are required",
			})
			return
		}
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if req.Role != models.RoleStudent {
			return nil
		}
		student := models.Student{
			ID:               uuid.NewString(),
			UserID:           user.ID,
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			EnrollmentNumber: req.EnrollmentNumber,
			Branch:           req.Branch,
			TenthPercent:     req.TenthPercent,
			TwelfthPercent:   req.TwelfthPercent,
			CGPA:             req.CGPA,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": duplicateAccountMessage(s.db, req.Email)})
			return
		}
		s.fail(c, err)
		return
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.ID, user.Role, s.tokenTTL())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created",
		"token":   token,
		"user":    gin.H{"id": user.ID, "email": user.Email, "role": user.Role},
	})
}

// duplicateAccountMessage names the unique index a create-account conflict
// hit. The email pre-check above is race-prone, so a concurrent signup can
// land the email conflict here instead of the 409 at the pre-check.
func duplicateAccountMessage(gdb *gorm.DB, email string) string {
	var n int64
	gdb.Model(&models.User{}).Where("email = ?", email).Count(&n)
	if n > 0 {
		return "Email already registered"
	}
	return "Enrollment number already exists"
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=STUDENT TPO_ADMIN"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var user models.User
	err := s.db.Where("email = ? AND role = ?", req.Email, req.Role).First(&user).Error
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same message for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.ID, user.Role, s.tokenTTL())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    gin.H{"id": user.ID, "email": user.Email, "role": user.Role},
	})
}

func (s *Server) handleMe(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)

	var user models.User
	if err := s.db.Where("id = ?", p.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"id": user.ID, "email": user.Email, "role": user.Role},
	})
}

package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/SaidRavestG/secugen-api/internal/device"  // Device session service
	"github.com/SaidRavestG/secugen-api/internal/domain"  // Importing domain models
	"github.com/SaidRavestG/secugen-api/internal/sgfplib" // Vendor SDK constants

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// EnrollRequest represents an enrollment request
type EnrollRequest struct {
	UserID         *uint  `json:"user_id" binding:"required"`         // Owner of the fingerprint
	FingerPosition string `json:"finger_position" binding:"required"` // e.g. "thumb_right"
}

// EnrollHandler captures a fingerprint and stores it against an existing user.
// One fingerprint per (user, finger position); the check happens here, not in
// the schema.
func EnrollHandler(db *gorm.DB, sess *device.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.Info("API Request: /enroll")
		if !requireReady(c, sess) {
			return
		}
		var req EnrollRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "JSON body must contain 'user_id' and 'finger_position'.",
			})
			return
		}
		var user domain.User // Verify the user row exists before touching the reader
		if err := db.First(&user, *req.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
			return
		}
		// Per-finger uniqueness, checked at insert time
		var existing domain.Fingerprint
		if err := db.Where("user_id = ? AND finger_position = ?", user.ID, req.FingerPosition).
			First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "A fingerprint for this finger is already enrolled for this user.",
			})
			return
		}
		// Capture first; nothing is written unless the reader delivered a template
		template, err := sess.CaptureTemplate()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failure during capture or template extraction.",
			})
			return
		}
		fingerprint := domain.Fingerprint{
			UserID:         user.ID,                      // Owner
			FingerPosition: req.FingerPosition,           // Finger label
			TemplateFormat: sgfplib.TemplateFormatSG400,  // Fixed vendor format tag
			TemplateData:   template,                     // Base64 template
		}
		// Single transaction; rollback on any persistence failure
		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&fingerprint).Error
		})
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":         user.ID,            // Owner
				"finger_position": req.FingerPosition, // Finger label
				"error":           err.Error(),        // Error message
			}).Error("Failed to store fingerprint")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store fingerprint."})
			return
		}
		// Log successful enrollment
		logrus.WithFields(logrus.Fields{
			"user_id":         user.ID,            // Owner
			"fingerprint_id":  fingerprint.ID,     // New row id
			"finger_position": req.FingerPosition, // Finger label
		}).Info("Fingerprint enrolled")
		c.JSON(http.StatusCreated, gin.H{
			"success":        true,
			"message":        "Fingerprint enrolled successfully.",
			"fingerprint_id": fingerprint.ID,
		})
	}
}

// ListFingerprintsHandler returns the fingerprints enrolled for a user
func ListFingerprintsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the user id from the path
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id."})
			return
		}
		var user domain.User // Verify the user row exists
		if err := db.First(&user, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
			return
		}
		var fingerprints []domain.Fingerprint // Query enrolled fingerprints
		if err := db.Where("user_id = ?", user.ID).Order("created_at").Find(&fingerprints).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch fingerprints."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "fingerprints": fingerprints})
	}
}

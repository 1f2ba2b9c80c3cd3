package api

import (
	"net/http" // HTTP status codes

	"github.com/SaidRavestG/secugen-api/internal/device"  // Device session service
	"github.com/SaidRavestG/secugen-api/internal/sgfplib" // Vendor SDK constants

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CaptureHandler captures a fingerprint and returns the extracted template in Base64
func CaptureHandler(sess *device.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.Info("API Request: /capture")
		if !requireReady(c, sess) {
			return
		}
		template, err := sess.CaptureTemplate()
		if err != nil {
			// Could be a capture error (finger badly placed, driver timeout) or
			// an extraction error
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failure during capture or template extraction.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "template": template})
	}
}

// VerifyRequest represents a template verification request
type VerifyRequest struct {
	Template1     string  `json:"template1" binding:"required"` // First Base64 template
	Template2     string  `json:"template2" binding:"required"` // Second Base64 template
	SecurityLevel *uint64 `json:"security_level"`               // Optional matcher strictness
}

// VerifyHandler compares two templates sent in Base64
func VerifyHandler(sess *device.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.Info("API Request: /verify")
		// The readiness gate comes before any look at the body
		if !requireReady(c, sess) {
			return
		}
		var req VerifyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "JSON body must contain 'template1' and 'template2'.",
			})
			return
		}
		level := sgfplib.SecurityLevelNormal
		if req.SecurityLevel != nil {
			level = *req.SecurityLevel
		}
		match, err := sess.VerifyTemplates(req.Template1, req.Template2, level)
		if err != nil {
			// Malformed input and vendor-call failures are both "could not
			// determine", never reported as a boolean result
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error during the verification process.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "match": match})
	}
}

package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"github.com/SaidRavestG/secugen-api/internal/device" // Device session service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// notReadyMessage is the fixed answer for every ready-only endpoint hit while
// the device session is uninitialized.
const notReadyMessage = "SDK not initialized or device not open."

// requireReady aborts with 503 when the device session is not ready.
// Returns true when the request may proceed.
func requireReady(c *gin.Context, sess *device.Session) bool {
	if sess.Ready() {
		return true
	}
	logrus.WithField("path", c.Request.URL.Path).Warn("Request while SDK not ready")
	c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": notReadyMessage})
	return false
}

// InitializeHandler initializes the SDK and opens the device
func InitializeHandler(sess *device.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.Info("API Request: /initialize")
		if err := sess.Initialize(); err != nil {
			// Details are in the server log; callers get a generic failure
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "Failed to initialize SDK or open device (see server logs).",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "SDK initialized and device opened successfully.",
		})
	}
}

// TerminateHandler closes the device and terminates the SDK
func TerminateHandler(sess *device.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.Info("API Request: /terminate")
		// Teardown is best-effort; state is reset either way and the endpoint
		// always answers 200
		if err := sess.Terminate(); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "SDK terminated with errors (see server logs)."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "SDK terminated."})
	}
}

// StatusHandler returns information and state of the connected reader
func StatusHandler(sess *device.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.Info("API Request: /status")
		if !requireReady(c, sess) {
			return
		}
		info, err := sess.DeviceInfo()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to get device information from the reader.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok", "device_info": info})
	}
}

// LEDRequest represents an LED control request
type LEDRequest struct {
	State *bool `json:"state" binding:"required"` // Desired LED state; pointer so false binds
}

// LEDHandler turns the reader LED on or off
func LEDHandler(sess *device.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.Info("API Request: /led")
		// The readiness gate comes before any look at the body
		if !requireReady(c, sess) {
			return
		}
		var req LEDRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "JSON body must contain the field 'state' with value true or false.",
			})
			return
		}
		if err := sess.SetLED(*req.State); err != nil {
			// An unsupported reader and a genuine fault both land here; the
			// message hints at the former without claiming to know
			if errors.Is(err, device.ErrNotSupported) {
				logrus.Warn("LED command rejected, reader may not support it")
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to send LED command to the reader (may not be supported).",
			})
			return
		}
		state := "OFF"
		if *req.State {
			state = "ON"
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Command to turn LED " + state + " sent."})
	}
}

package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// CORSMiddleware allows browser clients on other origins to call the reader API
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")                             // Allow any origin
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")           // Allowed methods
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")  // Allowed headers
		// Answer preflight requests without hitting the handlers
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next() // Proceed to the next handler
	}
}

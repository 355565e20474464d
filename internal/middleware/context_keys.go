package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// deviceIDKey stores the authenticated device identifier (the JWT subject).
const deviceIDKey = contextKey("deviceID")

// SetDeviceID stores the device ID in the request context.
func SetDeviceID(c *gin.Context, deviceID string) {
	ctx := context.WithValue(c.Request.Context(), deviceIDKey, deviceID)
	c.Request = c.Request.WithContext(ctx)
}

// GetDeviceIDFromContext retrieves the authenticated device ID.
func GetDeviceIDFromContext(c *gin.Context) (string, bool) {
	deviceID, ok := c.Request.Context().Value(deviceIDKey).(string)
	if !ok || deviceID == "" {
		return "", false
	}
	return deviceID, true
}

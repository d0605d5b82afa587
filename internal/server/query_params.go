package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// yearMonthQuery parses required year/month query parameters. Range checks
// stay with the services; this only rejects non-numeric input.
func yearMonthQuery(c *gin.Context) (int, int, error) {
	year, err := intQuery(c, "year", true)
	if err != nil {
		return 0, 0, err
	}
	month, err := intQuery(c, "month", true)
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func intQuery(c *gin.Context, name string, required bool) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		if required {
			return 0, newValidationError(name, "invalid_"+name, name+" is required")
		}
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newValidationError(name, "invalid_"+name, name+" must be an integer")
	}
	return value, nil
}

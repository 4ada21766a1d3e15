package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nikka005/nirbani-sub001/internal/util"
)

// today returns the current date as YYYY-MM-DD.
func today() string {
	return time.Now().Format("2006-01-02")
}

// dateRange reads from_date/to_date query parameters. Missing values default
// to the start of the current month and today.
func dateRange(c *gin.Context) (string, string, error) {
	now := time.Now()
	from := c.DefaultQuery("from_date", now.Format("2006-01")+"-01")
	to := c.DefaultQuery("to_date", now.Format("2006-01-02"))

	if err := util.ValidateDate(from); err != nil {
		return "", "", fmt.Errorf("from_date: %w", err)
	}
	if err := util.ValidateDate(to); err != nil {
		return "", "", fmt.Errorf("to_date: %w", err)
	}
	if from > to {
		return "", "", fmt.Errorf("from_date %s is after to_date %s", from, to)
	}
	return from, to, nil
}

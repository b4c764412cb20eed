package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mercurekit/version"
)

var startTime = time.Now()

// DetailsFunc adds service-specific fields to /info.
type DetailsFunc func() map[string]any

// Info returns a handler that reports build information and, when details is
// set, the fields it returns under "details".
func Info(serviceName string, details DetailsFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.GetVersionInfo()
		body := gin.H{
			"service":    serviceName,
			"version":    v.Version,
			"git_commit": v.GitCommit,
			"build_time": v.BuildTime,
			"go_version": v.GoVersion,
			"uptime":     time.Since(startTime).String(),
		}
		if details != nil {
			body["details"] = details()
		}
		c.JSON(http.StatusOK, body)
	}
}

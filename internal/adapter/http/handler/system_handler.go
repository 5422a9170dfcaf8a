package handler

import (
	"net/http"

	"storefront-gateway/internal/adapter/http/dto"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// Root handles GET /.
func Root(service, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.OK(c, dto.ServiceInfo{
			Service: service,
			Version: version,
			Status:  "running",
		})
	}
}

// HealthCheck handles GET /health, pinging every configured dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps := make(map[string]string, len(checkers))
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = "unhealthy: " + err.Error()
				allHealthy = false
			} else {
				deps[checker.Name()] = "healthy"
			}
		}

		body := dto.HealthResponse{Status: "healthy", Dependencies: deps}
		if !allHealthy {
			body.Status = "degraded"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

package middleware

import (
	"encoding/json"
	"net/http"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type auditRoute struct {
	method string
	route  string
}

type auditTarget struct {
	action       domain.AuditAction
	resourceType string
}

var auditedRoutes = map[auditRoute]auditTarget{
	{http.MethodPost, "/api/v1/auth/login"}:               {domain.AuditActionLogin, "session"},
	{http.MethodPost, "/api/v1/orders"}:                   {domain.AuditActionOrderSettled, "order"},
	{http.MethodPut, "/api/v1/catalog/products/:id/sold"}: {domain.AuditActionProductMarkedSold, "product"},
	{http.MethodPost, "/api/v1/catalog/orders"}:           {domain.AuditActionUpstreamOrderCreated, "upstream_order"},
	{http.MethodPost, "/api/v1/contact"}:                  {domain.AuditActionContactRequest, "contact"},
}

// AuditLog records successful writes after the handler has run.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		target, ok := mapRouteToAction(c.FullPath(), c.Request.Method)
		if !ok {
			return
		}

		details, _ := json.Marshal(map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			Action:       target.action,
			ResourceType: target.resourceType,
			ResourceID:   c.Param("id"),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
		})
	}
}

func mapRouteToAction(route, method string) (auditTarget, bool) {
	t, ok := auditedRoutes[auditRoute{method: method, route: route}]
	return t, ok
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalog "lokalpulse.com/gbpdashboard/internal/modules/catalog/service"
	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
)

type CatalogHandler struct {
	service catalog.Service
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// GetCatalog lists active task templates, optionally filtered by category or
// type via query params.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	category := c.Query("category")
	taskType := c.Query("type")

	templates := h.service.Templates()
	if category != "" || taskType != "" {
		filtered := make([]engine.Template, 0, len(templates))
		for _, tpl := range templates {
			if category != "" && tpl.Category != category {
				continue
			}
			if taskType != "" && tpl.Type != taskType {
				continue
			}
			filtered = append(filtered, tpl)
		}
		templates = filtered
	}

	c.JSON(http.StatusOK, gin.H{"data": templates, "total": len(templates)})
}

package handlers

import (
	"log"
	"net/http"

	"agroweb-bff/clients"
	"agroweb-bff/dtos"

	"github.com/gin-gonic/gin"
)

// DashboardHandler derives the dashboard's cards from the catalog. The
// numbers are computed per request; the catalog is small.
type DashboardHandler struct {
	Catalog *clients.CatalogClient
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	products, err := h.Catalog.Products(c.Request.Context())
	if err != nil {
		log.Printf("GetSummary: catalog fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load dashboard data"})
		return
	}

	summary := dtos.DashboardSummary{TotalProducts: len(products)}
	for _, p := range products {
		if p.InStock {
			summary.InStock++
		}
		if p.IsOrganic {
			summary.Organic++
		}
		if p.IsBestSeller {
			summary.BestSellers++
		}
	}

	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) GetTopSelling(c *gin.Context) {
	products, err := h.Catalog.Products(c.Request.Context())
	if err != nil {
		log.Printf("GetTopSelling: catalog fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load dashboard data"})
		return
	}

	top := make([]clients.Product, 0, 5)
	for _, p := range products {
		if p.IsBestSeller {
			top = append(top, p)
		}
		if len(top) == 5 {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{"products": top})
}

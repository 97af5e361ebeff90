package handlers

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"agroweb-bff/clients"
	"agroweb-bff/utils"

	"github.com/gin-gonic/gin"
)

// itemsPerPage matches the catalog page's grid.
const itemsPerPage = 8

// ProductHandler proxies the products service for the catalog and product
// registration pages. Filtering, sorting and pagination happen here so the
// page just renders what it gets.
type ProductHandler struct {
	Catalog *clients.CatalogClient
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.Catalog.Products(c.Request.Context())
	if err != nil {
		log.Printf("GetProducts: catalog fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load products"})
		return
	}

	category := c.DefaultQuery("category", "all")
	search := strings.ToLower(c.Query("search"))

	filtered := make([]clients.Product, 0, len(products))
	for _, p := range products {
		if category != "all" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch c.DefaultQuery("sort", "popular") {
	case "price-low":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "price-high":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case "name":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	default:
		// "popular" keeps the catalog's own order.
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	totalPages := (len(filtered) + itemsPerPage - 1) / itemsPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * itemsPerPage
	end := start + itemsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    filtered[start:end],
		"page":        page,
		"total_pages": totalPages,
		"total":       len(filtered),
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.Catalog.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		if clients.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("GetProduct: catalog fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct accepts the product registration form (fields plus an image
// upload) and forwards it to the products service.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	fields := map[string]string{}
	for _, key := range []string{"name", "category", "price", "unit", "description"} {
		fields[key] = c.PostForm(key)
	}
	for _, required := range []string{"name", "category", "price", "unit"} {
		if fields[required] == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": required + " is required"})
			return
		}
	}
	if _, err := strconv.ParseInt(fields["price"], 10, 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a whole number of pesos"})
		return
	}

	image, err := c.FormFile("image")
	if err == nil {
		if err := utils.ValidateFileUpload(image); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		image = nil
	}

	if err := h.Catalog.CreateProduct(c.Request.Context(), fields, image); err != nil {
		log.Printf("CreateProduct: forward failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not register product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product registered"})
}

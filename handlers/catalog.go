package handlers

import (
	"net/http"

	"fixkaro/models"
	catalogSvc "fixkaro/services/catalog"

	"github.com/gin-gonic/gin"
)

// ListCategoriesHandler returns every service category, optionally
// filtered by a search keyword.
func ListCategoriesHandler(svc catalogSvc.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Search(c.Query("q"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// GetCategoryHandler returns one category by ID.
func GetCategoryHandler(svc catalogSvc.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := svc.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// CreateCategoryHandler adds a category to the catalog.
func CreateCategoryHandler(svc catalogSvc.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name        string  `json:"name" binding:"required"`
			BasePrice   float64 `json:"base_price" binding:"required,gte=0"`
			Description string  `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		category, err := svc.Create(input.Name, input.BasePrice, input.Description)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// UpdateCategoryHandler modifies a category.
func UpdateCategoryHandler(svc catalogSvc.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.ServiceCategory
		if err := c.ShouldBindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		category.ID = c.Param("id")

		if err := svc.Update(&category); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategoryHandler removes a category. Jobs referencing it keep their
// dangling reference and display the placeholder.
func DeleteCategoryHandler(svc catalogSvc.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-gateway/pkg/catalog"
	"catalog-gateway/pkg/upstream"
)

// handleListProducts serves the full product set. Upstream failures are
// degraded to an empty array here, never a 5xx: the error stays typed up
// to this boundary and is only swallowed at the last moment.
func (s *Server) handleListProducts(c *gin.Context) {
	products, err := s.products.FetchAll(c.Request.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Product fetch failed, degrading to empty set")
		c.JSON(http.StatusOK, []catalog.Product{})
		return
	}
	c.JSON(http.StatusOK, products)
}

// handleGetProduct serves one product by id. Anything that is not a known
// product id - non-integer ids included - is absent, not malformed.
func (s *Server) handleGetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	product, err := s.products.FetchByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, upstream.ErrNotFound) {
			s.logger.Error().Err(err).Int("product_id", id).Msg("Product fetch failed, degrading to absent")
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// handleSearch serves name substring search results.
func (s *Server) handleSearch(c *gin.Context) {
	queryParam := c.Query("query")
	if err := catalog.ValidateSearchQuery(queryParam); err != nil {
		writeValidationError(c, err)
		return
	}

	results, err := s.engine.SearchByName(c.Request.Context(), queryParam)
	if err != nil {
		s.logger.Error().Err(err).Str("query", queryParam).Msg("Search failed, degrading to empty set")
		c.JSON(http.StatusOK, []catalog.Product{})
		return
	}

	c.JSON(http.StatusOK, results)
}

// handleCategory serves exact category matches. Zero matches is a 404,
// unlike search, which serves an empty 200 array.
func (s *Server) handleCategory(c *gin.Context) {
	category := c.Param("category")
	if err := catalog.ValidateCategory(category); err != nil {
		writeValidationError(c, err)
		return
	}

	results, err := s.engine.FilterByCategory(c.Request.Context(), category)
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("Category filter failed, degrading to absent")
		results = nil
	}

	if len(results) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("No products found in category '%s'", category),
		})
		return
	}

	c.JSON(http.StatusOK, results)
}

// writeValidationError surfaces a validation failure as a 400 with the
// violated constraint list.
func writeValidationError(c *gin.Context, err error) {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": verr.Message,
			"details": verr.Details,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go.ngs.io/regrid/internal/adapter/resample"
	"go.ngs.io/regrid/internal/domain"
	"go.ngs.io/regrid/internal/usecase"
)

// defaultFill stands in for unreachable target points in JSON responses,
// which cannot carry NaN.
const defaultFill = -9999.0

// Handler handles HTTP requests for grid queries and resampling.
type Handler struct {
	exportUC *usecase.ExportUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(exportUC *usecase.ExportUseCase) *Handler {
	return &Handler{
		exportUC: exportUC,
	}
}

// GetGrids handles GET /v1/grids.
func (h *Handler) GetGrids(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"grids": h.exportUC.Variants()})
}

// GetGridInfo handles GET /v1/grids/:variant.
func (h *Handler) GetGridInfo(c *gin.Context) {
	info, err := h.exportUC.GridInfo(c.Param("variant"))
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedVariant) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetNearest handles GET /v1/grids/:variant/nearest.
func (h *Handler) GetNearest(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon parameters are required"})
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid longitude: %v", err)})
		return
	}

	point, err := h.exportUC.Nearest(c.Param("variant"), lat, lon)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedVariant):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidGeometry):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, point)
}

// resampleBody is the JSON body of POST /v1/resample.
type resampleBody struct {
	Variant    string      `json:"variant" binding:"required"`
	Resolution [2]float64  `json:"resolution" binding:"required"`
	LatRange   *[2]float64 `json:"lat_range,omitempty"`
	LonRange   *[2]float64 `json:"lon_range,omitempty"`
	Method     string      `json:"method,omitempty"`
	Fill       *float64    `json:"fill,omitempty"`
	Steps      int         `json:"steps,omitempty"`
	Values     []float64   `json:"values" binding:"required"`
}

// resampleResponse is the JSON response of POST /v1/resample.
type resampleResponse struct {
	LatAxis []float64 `json:"lat_axis"`
	LonAxis []float64 `json:"lon_axis"`
	Steps   int       `json:"steps"`
	Values  []float64 `json:"values"`
}

// Resample handles POST /v1/resample.
func (h *Handler) Resample(c *gin.Context) {
	var body resampleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	fill := defaultFill
	if body.Fill != nil {
		fill = *body.Fill
	}
	steps := body.Steps
	if steps == 0 {
		steps = 1
	}

	req := usecase.ResampleRequest{
		Variant:    body.Variant,
		Resolution: body.Resolution,
		LatRange:   body.LatRange,
		LonRange:   body.LonRange,
		Method:     body.Method,
		Fill:       fill,
	}
	result, err := h.exportUC.Execute(req, resample.Field{Values: body.Values, Steps: steps})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedVariant):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resampleResponse{
		LatAxis: result.LatAxis,
		LonAxis: result.LonAxis,
		Steps:   result.Steps,
		Values:  result.Values,
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/memories-nativex/internal/application/port"
	"github.com/garyjia/memories-nativex/internal/application/service"
	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	configService    service.ConfigService
	freeSpaceService service.FreeSpaceService
	bridges          port.BridgeProvider
	logger           Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	configService service.ConfigService,
	freeSpaceService service.FreeSpaceService,
	bridges port.BridgeProvider,
	logger Logger,
) *Handlers {
	return &Handlers{
		configService:    configService,
		freeSpaceService: freeSpaceService,
		bridges:          bridges,
		logger:           logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	Version         string `json:"version"`
	BridgeAvailable bool   `json:"bridge_available"`
}

// PermissionResponse reports whether the host may read local media
type PermissionResponse struct {
	Allowed bool `json:"allowed"`
}

// AllowMediaRequest is the body of POST /api/config/media-permission
type AllowMediaRequest struct {
	Allow *bool `json:"allow" binding:"required"`
}

// NativeResponse carries the host's answer to a permission request as-is.
// Body is base64 encoded since the host may answer with anything.
type NativeResponse struct {
	StatusCode int                 `json:"status_code"`
	Header     map[string][]string `json:"header,omitempty"`
	Body       string              `json:"body"`
}

// ListReportsRequest represents query parameters for listing scan reports
type ListReportsRequest struct {
	Limit int `form:"limit"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:          "healthy",
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Version:         "1.0.0",
		BridgeAvailable: h.bridges != nil && h.bridges.Bridge() != nil,
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// GetLocalFolders handles GET /api/config/local-folders
func (h *Handlers) GetLocalFolders(c *gin.Context) {
	folders, err := h.configService.GetLocalFolders(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get local folders", "error", err)
		c.JSON(http.StatusBadGateway, Response{
			Success: false,
			Error:   "native host returned an invalid folder list",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    folders,
	})
}

// SetLocalFolders handles PUT /api/config/local-folders
func (h *Handlers) SetLocalFolders(c *gin.Context) {
	var folders []entity.LocalFolderConfig
	if err := c.ShouldBindJSON(&folders); err != nil {
		h.logger.Error("Invalid folder list", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid folder list",
		})
		return
	}

	if err := h.configService.SetLocalFolders(c.Request.Context(), folders); err != nil {
		h.logger.Error("Failed to set local folders", "error", err)
		c.JSON(http.StatusBadGateway, Response{
			Success: false,
			Error:   "native host rejected the folder list",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    folders,
	})
}

// GetMediaPermission handles GET /api/config/media-permission
func (h *Handlers) GetMediaPermission(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    PermissionResponse{Allowed: h.configService.HasMediaPermission(c.Request.Context())},
	})
}

// AllowMedia handles POST /api/config/media-permission
func (h *Handlers) AllowMedia(c *gin.Context) {
	var req AllowMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid permission request", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "body must be {\"allow\": true|false}",
		})
		return
	}

	resp, err := h.configService.AllowMedia(c.Request.Context(), *req.Allow)
	if err != nil {
		c.JSON(http.StatusBadGateway, Response{
			Success: false,
			Error:   "native API unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: NativeResponse{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       base64.StdEncoding.EncodeToString(resp.Body),
		},
	})
}

// Scan handles POST /api/free-space/scan
func (h *Handlers) Scan(c *gin.Context) {
	report, err := h.freeSpaceService.Scan(c.Request.Context())
	if err != nil {
		h.logger.Error("Free space scan interrupted", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{
			Success: false,
			Data:    report,
			Error:   "scan interrupted",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    report,
	})
}

// ListReports handles GET /api/free-space/reports
func (h *Handlers) ListReports(c *gin.Context) {
	var req ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	reports, err := h.freeSpaceService.ListReports(c.Request.Context(), req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve scan reports",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    reports,
	})
}

// GetReport handles GET /api/free-space/reports/:id
func (h *Handlers) GetReport(c *gin.Context) {
	id := c.Param("id")

	report, err := h.freeSpaceService.GetReport(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "scan report not found: " + strconv.Quote(id),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve scan report",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    report,
	})
}

package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"video-catalog-service/internal/app/service"
	"video-catalog-service/internal/transport/httpserver/dto"
)

// AdminHandler handles operational endpoints.
type AdminHandler struct {
	service *service.QueryService
	logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *service.QueryService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// Reload handles POST /api/v1/admin/reload. It rebuilds the snapshot
// from the backing file; concurrent requests coalesce into one load.
func (h *AdminHandler) Reload(c *fiber.Ctx) error {
	start := time.Now()

	version, records, err := h.service.Reload(c.Context())
	if err != nil {
		h.logger.Error("reload failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "reload failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.NewReloadResponse(version, records, time.Since(start)))
}

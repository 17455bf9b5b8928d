package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"video-catalog-service/internal/app/service"
	"video-catalog-service/internal/domain"
	"video-catalog-service/internal/transport/httpserver/dto"
)

// StatsHandler handles statistics and filter-options HTTP requests.
type StatsHandler struct {
	service *service.StatsService
	logger  *zap.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: svc,
		logger:  logger,
	}
}

// Stats handles GET /api/v1/stats
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return h.fail(c, "stats failed", err)
	}

	return c.JSON(dto.FromDomainStats(stats))
}

// FilterOptions handles GET /api/v1/filters
func (h *StatsHandler) FilterOptions(c *fiber.Ctx) error {
	opts, err := h.service.FilterOptions(c.Context())
	if err != nil {
		return h.fail(c, "filter options failed", err)
	}

	return c.JSON(dto.FromDomainFilterOptions(opts))
}

func (h *StatsHandler) fail(c *fiber.Ctx, msg string, err error) error {
	if errors.Is(err, domain.ErrNotReady) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: "catalog is still loading",
			Code:  "NOT_READY",
		})
	}
	h.logger.Error(msg, zap.Error(err))

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  "INTERNAL_ERROR",
	})
}

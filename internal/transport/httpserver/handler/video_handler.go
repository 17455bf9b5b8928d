// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"video-catalog-service/internal/app/service"
	"video-catalog-service/internal/domain"
	"video-catalog-service/internal/transport/httpserver/dto"
	"video-catalog-service/internal/validator"
)

// VideoHandler handles catalog query HTTP requests.
type VideoHandler struct {
	service   *service.QueryService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc *service.QueryService, v *validator.Validator, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// List handles GET /api/v1/videos
func (h *VideoHandler) List(c *fiber.Ctx) error {
	var req dto.VideoQueryRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	result, err := h.service.Query(c.Context(), req.ToQuery())
	if err != nil {
		if errors.Is(err, domain.ErrNotReady) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: "catalog is still loading",
				Code:  "NOT_READY",
			})
		}
		h.logger.Error("query failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "query failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromQueryResult(result))
}

// GetByID handles GET /api/v1/videos/:id
func (h *VideoHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	record, err := h.service.GetByVideoID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotReady) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: "catalog is still loading",
				Code:  "NOT_READY",
			})
		}
		h.logger.Error("get by id failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get video",
			Code:  "INTERNAL_ERROR",
		})
	}

	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "video not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainRecord(*record))
}

package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/service"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
)

type AIHandler struct {
	s service.AIService
}

func NewAIHandler(service service.AIService) *AIHandler {
	return &AIHandler{s: service}
}

func (h *AIHandler) ListModels(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.Models())
}

func (h *AIHandler) Generate(c *fiber.Ctx) error {
	var req transfer.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.Model == "" {
		req.Model = "gpt-4o"
	}

	text, err := h.s.Generate(c.Context(), req.Prompt, req.Model, req.System)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(transfer.GenerateResponse{
		Text:  text,
		Model: req.Model,
	})
}

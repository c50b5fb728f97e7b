package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/queue"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/repository"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/service"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
)

type AnalyticsHandler struct {
	s           service.AnalyticsService
	posts       repository.PostRepository
	AsynqClient *asynq.Client
}

func NewAnalyticsHandler(service service.AnalyticsService, posts repository.PostRepository, asynqClient *asynq.Client) *AnalyticsHandler {
	return &AnalyticsHandler{s: service, posts: posts, AsynqClient: asynqClient}
}

func (h *AnalyticsHandler) Refresh(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.AnalyticsRefresh
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	stats, err := h.s.Refresh(c.Context(), userID, req.PostID, req.Platform)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

// RefreshAll queues collection for every published post of the caller
// instead of fetching inline.
func (h *AnalyticsHandler) RefreshAll(c *fiber.Ctx) error {
	userID := GetUserID(c)

	posts, err := h.posts.ListByUser(c.Context(), userID, models.PostStatusPublished, 100)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list published posts",
		})
	}

	enqueued := 0
	for _, post := range posts {
		if post.PlatformPostID == "" {
			continue
		}
		err := queue.EnqueueCollectStats(h.AsynqClient, queue.CollectStatsPayload{
			PostID:   post.ID,
			UserID:   userID,
			Platform: post.Platform,
		})
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		enqueued++
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"enqueued": enqueued,
	})
}

func (h *AnalyticsHandler) GetPostAnalytics(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")
	limit := c.QueryInt("limit", 20)

	records, err := h.s.ForPost(c.Context(), userID, postID, limit)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(records)
}

func (h *AnalyticsHandler) ListAnalytics(c *fiber.Ctx) error {
	userID := GetUserID(c)
	limit := c.QueryInt("limit", 50)

	records, err := h.s.ListAll(c.Context(), userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list analytics",
		})
	}

	return c.Status(fiber.StatusOK).JSON(records)
}

func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	userID := GetUserID(c)

	summary, err := h.s.Summary(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to build summary",
		})
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

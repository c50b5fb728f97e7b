package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/service"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
	"github.com/Retyreg/VYUD-AI-Scheduler/pkg/utils"
)

type PlatformHandler struct {
	s   service.PlatformService
	cfg config.Config
}

func NewPlatformHandler(service service.PlatformService, cfg config.Config) *PlatformHandler {
	return &PlatformHandler{s: service, cfg: cfg}
}

func (h *PlatformHandler) AddSocialAccount(c *fiber.Ctx) error {
	platform := c.Params("platform")
	state := c.Cookies(h.cfg.CookieName)

	authURL := h.s.GetAuthURL(platform, state)
	if authURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported platform",
		})
	}

	return c.Redirect(authURL, fiber.StatusTemporaryRedirect)
}

// CallbackHandler finishes the OAuth dance. The state parameter carries the
// user token issued before the redirect.
func (h *PlatformHandler) CallbackHandler(c *fiber.Ctx) error {
	platform := c.Params("platform")
	code := c.Query("code")
	state := c.Query("state")

	claims, err := utils.ValidateToken(h.cfg.SupabaseJWTSecret, state)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid state",
		})
	}

	if _, err := h.s.HandleOAuthCallback(c.Context(), claims.Subject, platform, code); err != nil {
		slog.Info(err.Error())
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Redirect(h.cfg.FrontendURL + "/accounts")
}

func (h *PlatformHandler) ConnectAccount(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var conn transfer.AccountConnection
	if err := c.BodyParser(&conn); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	account, err := h.s.Connect(c.Context(), userID, &conn)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(accountInfo(account))
}

func (h *PlatformHandler) ListSocialAccounts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	accounts, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list accounts",
		})
	}

	infos := make([]transfer.AccountInfo, 0, len(accounts))
	for _, account := range accounts {
		infos = append(infos, accountInfo(account))
	}
	return c.Status(fiber.StatusOK).JSON(infos)
}

func (h *PlatformHandler) DisconnectAccount(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID := c.Params("id")

	if err := h.s.Disconnect(c.Context(), userID, accountID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to disconnect account",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"disconnected": true,
		"id":           accountID,
	})
}

// accountInfo strips the stored credential before anything leaves the API.
func accountInfo(account *models.Account) transfer.AccountInfo {
	info := transfer.AccountInfo{
		ID:          account.ID,
		Platform:    account.Platform,
		ChannelName: account.ChannelName,
		IsActive:    account.IsActive,
	}
	if !account.ConnectedAt.IsZero() {
		info.ConnectedAt = account.ConnectedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return info
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
	"golang.org/x/oauth2/vk"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/repository"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
	"github.com/Retyreg/VYUD-AI-Scheduler/pkg/utils"
)

type PlatformService interface {
	GetAuthURL(platform, state string) string
	HandleOAuthCallback(ctx context.Context, userID, platform, code string) (*models.Account, error)
	Connect(ctx context.Context, userID string, conn *transfer.AccountConnection) (*models.Account, error)
	List(ctx context.Context, userID string) ([]*models.Account, error)
	Disconnect(ctx context.Context, userID, accountID string) error
}

type platformService struct {
	cfg      config.Config
	accounts repository.AccountRepository
	telegram TelegramService
	linkedIn LinkedinService
	vkSvc    VKService

	linkedinOAuth *oauth2.Config
	vkOAuth       *oauth2.Config
}

func NewPlatformService(
	cfg config.Config,
	accounts repository.AccountRepository,
	telegram TelegramService,
	linkedIn LinkedinService,
	vkSvc VKService) PlatformService {
	return &platformService{
		cfg:      cfg,
		accounts: accounts,
		telegram: telegram,
		linkedIn: linkedIn,
		vkSvc:    vkSvc,
		linkedinOAuth: &oauth2.Config{
			ClientID:     cfg.LinkedinClientID,
			ClientSecret: cfg.LinkedinClientSecret,
			RedirectURL:  cfg.LinkedinRedirectURI,
			Scopes:       []string{"openid", "profile", "w_member_social"},
			Endpoint:     linkedin.Endpoint,
		},
		vkOAuth: &oauth2.Config{
			ClientID:     cfg.VKClientID,
			ClientSecret: cfg.VKClientSecret,
			RedirectURL:  cfg.VKRedirectURI,
			Scopes:       []string{"wall", "groups", "offline"},
			Endpoint:     vk.Endpoint,
		},
	}
}

func (s *platformService) GetAuthURL(platform, state string) string {
	switch platform {
	case models.PlatformLinkedin:
		return s.linkedinOAuth.AuthCodeURL(state)
	case models.PlatformVK:
		return s.vkOAuth.AuthCodeURL(state)
	default:
		return ""
	}
}

// HandleOAuthCallback exchanges the authorization code and stores the
// resulting credential as the user's account for the platform.
func (s *platformService) HandleOAuthCallback(ctx context.Context, userID, platform, code string) (*models.Account, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return nil, err
	}

	account := &models.Account{UserID: userID, Platform: platform}

	switch platform {
	case models.PlatformLinkedin:
		token, err := s.linkedinOAuth.Exchange(ctx, code)
		if err != nil {
			slog.Info(err.Error())
			return nil, fmt.Errorf("linkedin code exchange failed: %w", err)
		}
		userInfo, err := s.linkedIn.UserInfo(ctx, token.AccessToken)
		if err != nil {
			return nil, err
		}
		account.ChannelID = userInfo.Sub
		account.ChannelName = userInfo.Name
		if err := s.encryptInto(account, token.AccessToken); err != nil {
			return nil, err
		}

	case models.PlatformVK:
		token, err := s.vkOAuth.Exchange(ctx, code)
		if err != nil {
			slog.Info(err.Error())
			return nil, fmt.Errorf("vk code exchange failed: %w", err)
		}
		account.ChannelName = "VK"
		if err := s.encryptInto(account, token.AccessToken); err != nil {
			return nil, err
		}

	default:
		return nil, ErrUnknownPlatform
	}

	return s.accounts.Upsert(ctx, account)
}

// Connect binds a manually supplied credential (bot or community token)
// after checking it against the platform.
func (s *platformService) Connect(ctx context.Context, userID string, conn *transfer.AccountConnection) (*models.Account, error) {
	if !models.KnownPlatform(conn.Platform) {
		return nil, ErrUnknownPlatform
	}
	if conn.Token == "" {
		return nil, errors.New("token is empty")
	}

	account := &models.Account{
		UserID:      userID,
		Platform:    conn.Platform,
		ChannelID:   conn.ChannelID,
		ChannelName: conn.ChannelName,
	}

	switch conn.Platform {
	case models.PlatformTelegram:
		if conn.ChannelID == "" {
			return nil, errors.New("telegram chat id is required")
		}
		chat, err := s.telegram.GetChat(ctx, conn.Token, conn.ChannelID)
		if err != nil {
			return nil, err
		}
		if account.ChannelName == "" {
			account.ChannelName = chat.Title
		}
		account.ChannelUsername = chat.Username

	case models.PlatformVK:
		if conn.ChannelID == "" {
			return nil, errors.New("vk community owner id is required")
		}
		group, err := s.vkSvc.GroupInfo(ctx, conn.Token, conn.ChannelID)
		if err != nil {
			return nil, err
		}
		if account.ChannelName == "" {
			account.ChannelName = group.Name
		}
		account.ChannelUsername = group.ScreenName
		if !strings.HasPrefix(account.ChannelID, "-") {
			account.ChannelID = "-" + account.ChannelID
		}

	case models.PlatformLinkedin:
		userInfo, err := s.linkedIn.UserInfo(ctx, conn.Token)
		if err != nil {
			return nil, err
		}
		account.ChannelID = userInfo.Sub
		if account.ChannelName == "" {
			account.ChannelName = userInfo.Name
		}
	}

	if err := s.encryptInto(account, conn.Token); err != nil {
		return nil, err
	}
	return s.accounts.Upsert(ctx, account)
}

func (s *platformService) List(ctx context.Context, userID string) ([]*models.Account, error) {
	if userID == "" {
		err := errors.New("user id is not valid")
		slog.Info(err.Error())
		return nil, err
	}
	return s.accounts.ListByUser(ctx, userID)
}

func (s *platformService) Disconnect(ctx context.Context, userID, accountID string) error {
	if accountID == "" {
		err := errors.New("account id is not valid")
		slog.Info(err.Error())
		return err
	}
	return s.accounts.Deactivate(ctx, accountID, userID)
}

func (s *platformService) encryptInto(account *models.Account, token string) error {
	encrypted, err := utils.Encrypt([]byte(token), []byte(s.cfg.SecretKey))
	if err != nil {
		return fmt.Errorf("unable to encrypt credential: %w", err)
	}
	account.Token = encrypted
	return nil
}

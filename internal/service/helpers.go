package service

import (
	"errors"
	"time"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/pkg/utils"
)

// Bound on a single stalled platform call so one bad upstream cannot hold
// a whole publisher tick.
const platformCallTimeout = 10 * time.Second

// accountToken decrypts the credential stored on the account. Credentials
// are read fresh on every use; nothing is cached across ticks.
func accountToken(cfg config.Config, account *models.Account) (string, error) {
	if account == nil || account.Token == "" {
		return "", errors.New("account has no credential")
	}
	return utils.Decrypt(account.Token, []byte(cfg.SecretKey))
}

package services

import (
	"context"
	"errors"

	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LockServiceError is the typed error of the app-lock service.
type LockServiceError string

func (e LockServiceError) Error() string { return string(e) }

const (
	ErrLockPassphraseTooShort LockServiceError = "passphrase must be at least 6 characters"
	ErrLockInvalidPassphrase  LockServiceError = "passphrase does not match"
	ErrLockUpdateFailed       LockServiceError = "could not update lock settings"
)

const minPassphraseLength = 6

// ILockService guards the app with an optional local passphrase.
type ILockService interface {
	IsLockEnabled(ctx context.Context) bool
	SetPassphrase(ctx context.Context, passphrase string) error
	VerifyPassphrase(ctx context.Context, passphrase string) error
	DisableLock(ctx context.Context, currentPassphrase string) error
}

// LockService implements ILockService.
type LockService struct {
	settings repositories.ISettingRepository
}

// NewLockService builds the service on the shared repositories.
func NewLockService() ILockService {
	return &LockService{settings: repositories.NewSettingRepository()}
}

// IsLockEnabled reports whether a passphrase hash is stored.
func (s *LockService) IsLockEnabled(ctx context.Context) bool {
	_, err := s.settings.Get(ctx, models.SettingLockHash)
	return err == nil
}

// SetPassphrase hashes and stores the passphrase, enabling the lock.
func (s *LockService) SetPassphrase(ctx context.Context, passphrase string) error {
	if len(passphrase) < minPassphraseLength {
		return ErrLockPassphraseTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("LockService.SetPassphrase: hash failed", zap.Error(err))
		return ErrLockUpdateFailed
	}
	if err := s.settings.Set(ctx, models.SettingLockHash, string(hash)); err != nil {
		configslog.Log.Error("LockService.SetPassphrase: store failed", zap.Error(err))
		return ErrLockUpdateFailed
	}
	configslog.SLog.Info("App lock enabled")
	return nil
}

// VerifyPassphrase checks the passphrase against the stored hash. An app
// without a stored hash accepts any passphrase.
func (s *LockService) VerifyPassphrase(ctx context.Context, passphrase string) error {
	hash, err := s.settings.Get(ctx, models.SettingLockHash)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return ErrLockUpdateFailed
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) != nil {
		return ErrLockInvalidPassphrase
	}
	return nil
}

// DisableLock removes the stored hash after verifying the current passphrase.
func (s *LockService) DisableLock(ctx context.Context, currentPassphrase string) error {
	if err := s.VerifyPassphrase(ctx, currentPassphrase); err != nil {
		return err
	}
	if err := s.settings.Unset(ctx, models.SettingLockHash); err != nil {
		configslog.Log.Error("LockService.DisableLock: store failed", zap.Error(err))
		return ErrLockUpdateFailed
	}
	configslog.SLog.Info("App lock disabled")
	return nil
}

var _ ILockService = (*LockService)(nil)

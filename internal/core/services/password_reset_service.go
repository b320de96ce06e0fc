package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/platform/config"
	"github.com/SscSPs/cashflow_backend/internal/platform/mailer"
	"github.com/SscSPs/cashflow_backend/internal/utils"
	"github.com/jackc/pgx/v5"
)

const resetMailSubject = "Password Reset Request"

var errInvalidResetToken = fmt.Errorf("%w: invalid or expired reset token", apperrors.ErrValidation)

type passwordResetService struct {
	BaseService
	cfg       *config.Config
	userRepo  portsrepo.UserRepositoryFacade
	resetRepo portsrepo.PasswordResetTokenRepository
	mailer    mailer.Mailer
}

func NewPasswordResetService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, resetRepo portsrepo.PasswordResetTokenRepository, m mailer.Mailer) portssvc.PasswordResetSvcFacade {
	return &passwordResetService{
		cfg:       cfg,
		userRepo:  userRepo,
		resetRepo: resetRepo,
		mailer:    m,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogDebug(ctx, "Password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	raw, err := utils.GenerateOpaqueToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	now := time.Now().UTC()
	token := domain.PasswordResetToken{
		TokenHash: utils.HashOpaqueToken(raw),
		UserID:    user.UserID,
		ExpiresAt: now.Add(s.cfg.ResetTokenExpiryDuration),
		CreatedAt: now,
	}
	if err := s.resetRepo.SaveResetToken(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to save reset token", slog.String("user_id", user.UserID))
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(s.cfg.FrontendBaseURL, "/"), raw)
	body := fmt.Sprintf("To reset your password, visit the following link:\n%s\n\n"+
		"If you did not make this request, simply ignore this email and no changes will be made.\n", link)

	// A delivery failure is not reported to the caller; the response must not depend on the email.
	if err := s.mailer.Send(ctx, user.Email, resetMailSubject, body); err != nil {
		s.LogError(ctx, err, "Failed to send password reset mail", slog.String("user_id", user.UserID))
		return nil
	}
	s.LogInfo(ctx, "Password reset mail sent", slog.String("user_id", user.UserID))
	return nil
}

func (s *passwordResetService) ValidateResetToken(ctx context.Context, token string) error {
	_, err := s.usableToken(ctx, token)
	return err
}

func (s *passwordResetService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if problems := utils.ValidatePasswordStrength(newPassword); len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(problems, "; "))
	}

	reset, err := s.usableToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	// The token stays usable unless the password change commits with it.
	err = runInTx(ctx, s.userRepo, func(tx pgx.Tx) error {
		if err := s.resetRepo.MarkResetTokenUsedInTx(ctx, tx, reset.TokenHash, now); err != nil {
			if errors.Is(err, apperrors.ErrInvalidState) || errors.Is(err, apperrors.ErrNotFound) {
				return errInvalidResetToken
			}
			return err
		}
		return s.userRepo.UpdatePasswordInTx(ctx, tx, reset.UserID, hash, now)
	})
	if err != nil {
		if !errors.Is(err, errInvalidResetToken) {
			s.LogError(ctx, err, "Failed to reset password", slog.String("user_id", reset.UserID))
		}
		return err
	}

	s.LogInfo(ctx, "Password reset completed", slog.String("user_id", reset.UserID))
	return nil
}

func (s *passwordResetService) DeleteOldResetTokens(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("%w: retention must be positive", apperrors.ErrValidation)
	}
	n, err := s.resetRepo.DeleteResetTokensCreatedBefore(ctx, time.Now().UTC().Add(-retention))
	if err != nil {
		s.LogError(ctx, err, "Failed to delete old reset tokens")
		return 0, err
	}
	s.LogInfo(ctx, "Old reset tokens deleted", slog.Int64("count", n))
	return n, nil
}

func (s *passwordResetService) usableToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	if token == "" {
		return nil, errInvalidResetToken
	}
	reset, err := s.resetRepo.FindResetToken(ctx, utils.HashOpaqueToken(token))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, errInvalidResetToken
	}
	if err != nil {
		return nil, err
	}
	if !reset.Usable(time.Now().UTC()) {
		return nil, errInvalidResetToken
	}
	return reset, nil
}

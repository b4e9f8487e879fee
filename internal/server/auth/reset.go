package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/capsort/capsort/internal/apperr"
	"github.com/capsort/capsort/internal/server/mailer"
	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/internal/validation"
	"github.com/capsort/capsort/pkg/api"
)

// ForgotPasswordMessage одинаковый ответ независимо от наличия учетной записи
const ForgotPasswordMessage = "If an account with that email exists, a password reset link has been sent"

// ForgotPassword запускает отправку письма со ссылкой для сброса пароля.
// Поиск пользователя и отправка выполняются в фоне, поэтому ответ
// и время ответа не зависят от существования учетной записи.
func (s *Service) ForgotPassword(ctx context.Context, req api.ForgotPasswordRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		s.observe("forgot_password", "invalid")
		return err
	}

	email := validation.NormalizeEmail(req.Email)

	// Контекст запроса отменится после ответа; логгер сохраняет request id из ctx
	bg := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		sendCtx, cancel := context.WithTimeout(bg, s.cfg.MailTimeout)
		defer cancel()

		if err := s.sendResetEmail(sendCtx, email); err != nil {
			s.logger.ErrorContext(sendCtx, "password reset email failed", slog.Any("error", err))
			s.observe("forgot_password", "error")
		}
	}()

	s.observe("forgot_password", "accepted")
	return nil
}

// sendResetEmail выпускает токен и отправляет письмо, если пользователь существует
// Отправка выполняется не более одного раза
func (s *Service) sendResetEmail(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.InfoContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	signed, expiresAt, err := s.tokens.IssueReset(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	msg, err := mailer.ResetMessage(user.Email, mailer.ResetData{
		FullName:  user.FullName,
		Link:      s.resetLink(signed),
		ExpiresIn: humanDuration(time.Until(expiresAt).Round(time.Minute)),
	})
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	id, err := s.mailer.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset email sent",
		slog.Int64("user_id", user.ID),
		slog.String("message_id", id))
	s.observe("forgot_password", "sent")

	return nil
}

func (s *Service) resetLink(signed string) string {
	return s.cfg.FrontendURL + "/reset-password?token=" + url.QueryEscape(signed)
}

// ResetPassword проверяет токен сброса и устанавливает новый пароль.
// Сессия не выдается; пользователь должен войти заново.
func (s *Service) ResetPassword(ctx context.Context, req api.ResetPasswordRequest) error {
	req.Token = strings.TrimSpace(req.Token)
	if err := s.validator.Struct(req); err != nil {
		s.observe("reset_password", "invalid")
		return err
	}

	claims, err := s.tokens.VerifyReset(req.Token)
	if err != nil {
		s.logger.WarnContext(ctx, "reset token rejected", slog.String("reason", err.Error()))
		s.observe("reset_password", "invalid_token")
		return apperr.Wrap(apperr.KindInvalidToken, msgInvalidResetToken, err)
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.observe("reset_password", "invalid_token")
			return apperr.Wrap(apperr.KindInvalidToken, msgInvalidResetToken, err)
		}
		return s.internal(ctx, "reset_password", "failed to get user", err)
	}

	// Токен привязан к email на момент выдачи
	if user.Email != claims.Email {
		s.logger.WarnContext(ctx, "reset token email mismatch", slog.Int64("user_id", user.ID))
		s.observe("reset_password", "invalid_token")
		return apperr.New(apperr.KindInvalidToken, msgInvalidResetToken)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return s.internal(ctx, "reset_password", "failed to hash password", err)
	}

	if s.ledger != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		first, err := s.ledger.Consume(ctx, claims.ID, ttl)
		if err != nil {
			return s.internal(ctx, "reset_password", "failed to record reset token", err)
		}
		if !first {
			s.logger.WarnContext(ctx, "reset token reused", slog.Int64("user_id", user.ID))
			s.observe("reset_password", "invalid_token")
			return apperr.New(apperr.KindInvalidToken, msgInvalidResetToken)
		}
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apperr.Wrap(apperr.KindInvalidToken, msgInvalidResetToken, err)
		}
		// Пароль не сохранен, токен должен остаться пригодным для повтора
		s.releaseResetToken(ctx, claims.ID, user.ID)
		return s.internal(ctx, "reset_password", "failed to update password", err)
	}

	s.logger.InfoContext(ctx, "password reset successfully", slog.Int64("user_id", user.ID))
	s.observe("reset_password", "success")

	return nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		if d == time.Hour {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", d/time.Hour)
	case d >= time.Minute:
		return fmt.Sprintf("%d minutes", d/time.Minute)
	default:
		return "a few minutes"
	}
}

// releaseResetToken снимает отметку об использовании токена
// Ошибка только логируется: исходная ошибка обновления важнее
func (s *Service) releaseResetToken(ctx context.Context, jti string, userID int64) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Release(context.WithoutCancel(ctx), jti); err != nil {
		s.logger.ErrorContext(ctx, "failed to release reset token",
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
	}
}

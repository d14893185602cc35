package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"taskpro-backend/internal/apperror"
	"taskpro-backend/internal/help/dto"
	"taskpro-backend/pkg/mailer"

	"github.com/go-playground/validator/v10"
)

var (
	ErrFieldsRequired = apperror.BadRequest("Email and comment are required")
	ErrInvalidEmail   = apperror.BadRequest("Please enter a valid email address")
	ErrSendFailed     = apperror.Internal("Failed to send help request")
)

var validate = validator.New()

type HelpUsecase interface {
	// Send forwards a user's help request to the support inbox.
	Send(ctx context.Context, req *dto.HelpRequest) error
}

type helpUsecase struct {
	mailer       mailer.Sender
	supportEmail string
}

func NewHelpUsecase(sender mailer.Sender, supportEmail string) HelpUsecase {
	return &helpUsecase{mailer: sender, supportEmail: supportEmail}
}

func (u *helpUsecase) Send(ctx context.Context, req *dto.HelpRequest) error {
	email := strings.TrimSpace(req.Email)
	comment := strings.TrimSpace(req.Comment)
	if email == "" || comment == "" {
		return ErrFieldsRequired
	}
	if validate.Var(email, "email") != nil {
		return ErrInvalidEmail
	}

	if u.mailer == nil || u.supportEmail == "" {
		return ErrSendFailed.Wrap(mailer.ErrNotConfigured)
	}

	msg, err := mailer.HelpRequest(u.supportEmail, email, comment)
	if err != nil {
		return err
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		log.Printf("[Help] Failed to forward request from %s: %v", email, err)
		var providerErr *mailer.ProviderError
		if errors.As(err, &providerErr) {
			return apperror.Internal(providerErr.Message).Wrap(err)
		}
		return ErrSendFailed.Wrap(err)
	}
	return nil
}

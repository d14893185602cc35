package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"taskpro-backend/internal/apperror"
	"taskpro-backend/internal/help/dto"
	"taskpro-backend/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	msgs []mailer.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

func TestSend(t *testing.T) {
	sender := &recordingSender{}
	uc := NewHelpUsecase(sender, "support@taskpro.app")

	require.NoError(t, uc.Send(context.Background(), &dto.HelpRequest{Email: " ann@example.com ", Comment: "Cards vanish <b>sometimes</b>"}))
	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, "support@taskpro.app", msg.ToEmail)
	assert.Equal(t, "ann@example.com", msg.ReplyTo)
	assert.Contains(t, msg.HTML, "&lt;b&gt;sometimes&lt;/b&gt;")
}

func TestSend_Validation(t *testing.T) {
	uc := NewHelpUsecase(&recordingSender{}, "support@taskpro.app")

	assert.ErrorIs(t, uc.Send(context.Background(), &dto.HelpRequest{Email: "ann@example.com"}), ErrFieldsRequired)
	assert.ErrorIs(t, uc.Send(context.Background(), &dto.HelpRequest{Email: "ann", Comment: "hi"}), ErrInvalidEmail)
}

func TestSend_ProviderMessageSurfaces(t *testing.T) {
	sender := &recordingSender{err: &mailer.ProviderError{StatusCode: 401, Message: "Key not found"}}
	uc := NewHelpUsecase(sender, "support@taskpro.app")

	err := uc.Send(context.Background(), &dto.HelpRequest{Email: "ann@example.com", Comment: "hi"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperror.StatusOf(err))
	assert.Equal(t, "Key not found", apperror.MessageOf(err))

	sender.err = errors.New("dial tcp: timeout")
	err = uc.Send(context.Background(), &dto.HelpRequest{Email: "ann@example.com", Comment: "hi"})
	assert.ErrorIs(t, err, ErrSendFailed)
}

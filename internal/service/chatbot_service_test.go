package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

func TestChatbotMatchesKeyword(t *testing.T) {
	svc := NewChatbotService(zap.NewNop())

	reply, err := svc.Ask("When is the application deadline?")
	require.NoError(t, err)
	require.True(t, reply.Matched)
	require.Equal(t, "deadline", reply.RuleHint)
	require.NotEmpty(t, reply.Reply)
}

func TestChatbotMatchingIsCaseInsensitive(t *testing.T) {
	svc := NewChatbotService(zap.NewNop())

	reply, err := svc.Ask("TUITION fees?")
	require.NoError(t, err)
	require.True(t, reply.Matched)
}

func TestChatbotFallsBackOnUnknownQuestion(t *testing.T) {
	svc := NewChatbotService(zap.NewNop())

	reply, err := svc.Ask("what is the meaning of life")
	require.NoError(t, err)
	require.False(t, reply.Matched)
	require.Equal(t, chatFallbackReply, reply.Reply)
}

func TestChatbotRejectsEmptyQuestion(t *testing.T) {
	svc := NewChatbotService(zap.NewNop())

	_, err := svc.Ask("   ")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

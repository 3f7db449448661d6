package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := tokens.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)

	token, err := tokens.IssueWithTTL(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	other := service.NewTokenService("another-secret", time.Hour)

	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "notavalidjwt"},
		{name: "truncated", token: "aaa.bbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Verify(tt.token)
			assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
		})
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	tokens := service.NewTokenService("test-secret", 0)
	assert.Equal(t, time.Hour, tokens.TTL())
}

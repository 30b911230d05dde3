package auth

import (
	"testing"
	"time"

	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour, "tests")
	account := &model.Account{ID: 7, Username: "alice", Role: model.RoleOrganizer}

	token, issued, err := tm.Issue(account)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.AccountID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleOrganizer, claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, "tests").(*TokenManagerImpl)
	tm.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := tm.Issue(&model.Account{ID: 1, Username: "bob", Role: model.RoleAttendee})
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("one", time.Hour, "tests").Issue(&model.Account{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour, "tests").Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour, "tests").Parse("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), apperrors.ErrInvalidCredentials)
}

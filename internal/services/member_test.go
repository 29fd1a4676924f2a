package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservationportal/internal/domain"
	"reservationportal/internal/repository/memory"
)

func TestMemberService(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(memory.NewStore().AllowList(), 5*time.Second)

	u, err := svc.AddMember(ctx, " Ada@Example.com ", "Ada", "Lovelace", false)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)

	_, err = svc.AddMember(ctx, "ada@example.com", "Ada", "L", false)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = svc.AddMember(ctx, "not-an-email", "", "", false)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	promoted, err := svc.SetAdmin(ctx, "ADA@example.com", true)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	_, err = svc.SetAdmin(ctx, "eve@example.com", true)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	members, err := svc.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageServiceSend(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	messages := newFakeMessageRepo()
	userSvc := NewUserService(users, nil)
	svc := NewMessageService(users, messages)
	ctx := context.Background()

	bob, err := userSvc.Register(ctx, registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Username = "alice_9"
	in.Email = "alice@x.com"
	alice, err := userSvc.Register(ctx, in)
	require.NoError(t, err)

	message, err := svc.Send(ctx, "bob_01", "alice_9", "hello alice")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, message.FromID)
	assert.Equal(t, alice.ID, message.ToID)
	assert.Equal(t, "hello alice", message.Text)
	assert.False(t, message.CreatedAt.IsZero())

	// recipients resolve by email as well
	message, err = svc.Send(ctx, "bob_01", "ALICE@X.COM", "hi again")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, message.ToID)
}

func TestMessageServiceSendUnknownRecipient(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	userSvc := NewUserService(users, nil)
	svc := NewMessageService(users, newFakeMessageRepo())
	ctx := context.Background()

	_, err := userSvc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.Send(ctx, "bob_01", "ghost", "anyone there?")
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockLifecycle(t *testing.T) {
	setupTest(t)
	svc := NewLockService()
	ctx := context.Background()

	assert.False(t, svc.IsLockEnabled(ctx))
	// without a stored hash any passphrase passes
	assert.NoError(t, svc.VerifyPassphrase(ctx, "anything"))

	assert.ErrorIs(t, svc.SetPassphrase(ctx, "short"), ErrLockPassphraseTooShort)

	require.NoError(t, svc.SetPassphrase(ctx, "correct horse"))
	assert.True(t, svc.IsLockEnabled(ctx))

	assert.ErrorIs(t, svc.VerifyPassphrase(ctx, "wrong"), ErrLockInvalidPassphrase)
	assert.NoError(t, svc.VerifyPassphrase(ctx, "correct horse"))

	assert.ErrorIs(t, svc.DisableLock(ctx, "wrong"), ErrLockInvalidPassphrase)
	require.NoError(t, svc.DisableLock(ctx, "correct horse"))
	assert.False(t, svc.IsLockEnabled(ctx))
}

func TestSetPassphraseReplacesExisting(t *testing.T) {
	setupTest(t)
	svc := NewLockService()
	ctx := context.Background()

	require.NoError(t, svc.SetPassphrase(ctx, "first one"))
	require.NoError(t, svc.SetPassphrase(ctx, "second one"))

	assert.ErrorIs(t, svc.VerifyPassphrase(ctx, "first one"), ErrLockInvalidPassphrase)
	assert.NoError(t, svc.VerifyPassphrase(ctx, "second one"))
}

package recovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/fakeapi"
	"github.com/Talentid15/Candidate/internal/forms"
)

func newFlow(t *testing.T) (*Flow, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	return New(client.New(srv.URL)), srv
}

func TestFlow_HappyPath(t *testing.T) {
	f, srv := newFlow(t)
	ctx := context.Background()

	require.NoError(t, f.SubmitEmail(ctx, fakeapi.DefaultEmail))
	assert.Equal(t, AwaitingOTP, f.Stage())
	assert.Equal(t, fakeapi.DefaultEmail, f.Email())

	require.NoError(t, f.SubmitOTP(ctx, fakeapi.DefaultOTP))
	assert.Equal(t, AwaitingReset, f.Stage())
	assert.Equal(t, fakeapi.DefaultEmail, f.Email())

	require.NoError(t, f.SubmitReset(ctx, "newpass1", "newpass1"))
	assert.Equal(t, Idle, f.Stage())
	assert.True(t, f.Completed())
	assert.Empty(t, f.Error())
	assert.Equal(t, "newpass1", srv.Password(fakeapi.DefaultEmail))
}

func TestFlow_OTPFromIdleIsImpossible(t *testing.T) {
	f, srv := newFlow(t)

	err := f.SubmitOTP(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrWrongStage)
	assert.Equal(t, Idle, f.Stage())
	assert.Equal(t, 0, srv.Calls(client.PathVerifyOTP))
}

func TestFlow_ResetFromOTPStageIsImpossible(t *testing.T) {
	f, srv := newFlow(t)
	require.NoError(t, f.SubmitEmail(context.Background(), fakeapi.DefaultEmail))

	err := f.SubmitReset(context.Background(), "newpass1", "newpass1")
	assert.ErrorIs(t, err, ErrWrongStage)
	assert.Equal(t, 0, srv.Calls(client.PathForgotPassword))
}

func TestFlow_MismatchRejectedLocally(t *testing.T) {
	f, srv := newFlow(t)
	ctx := context.Background()
	require.NoError(t, f.SubmitEmail(ctx, fakeapi.DefaultEmail))
	require.NoError(t, f.SubmitOTP(ctx, fakeapi.DefaultOTP))

	err := f.SubmitReset(ctx, "abcdef", "abcdeg")
	assert.True(t, forms.IsValidation(err))
	assert.Equal(t, "Passwords do not match", f.Error())
	assert.Equal(t, AwaitingReset, f.Stage())
	assert.Equal(t, 0, srv.Calls(client.PathForgotPassword))
}

func TestFlow_ShortPasswordRejectedLocally(t *testing.T) {
	f, srv := newFlow(t)
	ctx := context.Background()
	require.NoError(t, f.SubmitEmail(ctx, fakeapi.DefaultEmail))
	require.NoError(t, f.SubmitOTP(ctx, fakeapi.DefaultOTP))

	err := f.SubmitReset(ctx, "abc", "abc")
	assert.True(t, forms.IsValidation(err))
	assert.Equal(t, 0, srv.Calls(client.PathForgotPassword))
}

func TestFlow_EmptyEmailRejectedLocally(t *testing.T) {
	f, srv := newFlow(t)

	err := f.SubmitEmail(context.Background(), "")
	assert.True(t, forms.IsValidation(err))
	assert.Equal(t, "Email is required", f.Error())
	assert.Equal(t, 0, srv.Calls(client.PathForgotEmail))
}

func TestFlow_ServerMessages(t *testing.T) {
	f, _ := newFlow(t)
	ctx := context.Background()

	err := f.SubmitEmail(ctx, "nobody@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, Idle, f.Stage())
	assert.NotEmpty(t, f.Error())

	require.NoError(t, f.SubmitEmail(ctx, fakeapi.DefaultEmail))
	assert.Empty(t, f.Error(), "success clears the previous error")

	require.Error(t, f.SubmitOTP(ctx, "000000"))
	assert.Equal(t, AwaitingOTP, f.Stage())
	assert.Equal(t, "Invalid OTP", f.Error())
}

func TestFlow_FallbackMessages(t *testing.T) {
	f, srv := newFlow(t)
	srv.Close()

	require.Error(t, f.SubmitEmail(context.Background(), fakeapi.DefaultEmail))
	assert.Equal(t, MsgSendOTPFailed, f.Error())
	assert.False(t, f.Loading())
}

func TestFlow_CancelResets(t *testing.T) {
	f, _ := newFlow(t)
	ctx := context.Background()
	require.NoError(t, f.SubmitEmail(ctx, fakeapi.DefaultEmail))
	require.NoError(t, f.SubmitOTP(ctx, fakeapi.DefaultOTP))

	f.Cancel()
	assert.Equal(t, Idle, f.Stage())
	assert.Empty(t, f.Email())
	assert.False(t, f.Completed())

	assert.ErrorIs(t, f.SubmitOTP(ctx, fakeapi.DefaultOTP), ErrWrongStage)
}

// blockingAPI holds every call until release is closed
type blockingAPI struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func newBlockingAPI() *blockingAPI {
	return &blockingAPI{started: make(chan struct{}, 10), release: make(chan struct{})}
}

func (b *blockingAPI) wait() error {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return nil
}

func (b *blockingAPI) RequestPasswordReset(ctx context.Context, email string) error {
	return b.wait()
}

func (b *blockingAPI) VerifyOTP(ctx context.Context, email, otp string) error {
	return b.wait()
}

func (b *blockingAPI) ResetPassword(ctx context.Context, req client.ResetRequest) error {
	return b.wait()
}

func TestFlow_SerialGate(t *testing.T) {
	api := newBlockingAPI()
	f := New(api)

	done := make(chan error, 1)
	go func() { done <- f.SubmitEmail(context.Background(), "jane@example.com") }()

	select {
	case <-api.started:
	case <-time.After(time.Second):
		t.Fatal("first submit never reached the API")
	}
	assert.True(t, f.Loading())
	assert.ErrorIs(t, f.SubmitEmail(context.Background(), "jane@example.com"), ErrInFlight)

	close(api.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, AwaitingOTP, f.Stage())
}

func TestFlow_CancelDiscardsInFlightResult(t *testing.T) {
	api := newBlockingAPI()
	f := New(api)

	done := make(chan error, 1)
	go func() { done <- f.SubmitEmail(context.Background(), "jane@example.com") }()
	<-api.started

	f.Cancel()
	close(api.release)

	assert.True(t, errors.Is(<-done, context.Canceled))
	assert.Equal(t, Idle, f.Stage())
	assert.Empty(t, f.Email())
}

func TestFlow_CancelKeepsGateClosedUntilResponse(t *testing.T) {
	api := newBlockingAPI()
	f := New(api)

	done := make(chan error, 1)
	go func() { done <- f.SubmitEmail(context.Background(), "jane@example.com") }()
	<-api.started

	f.Cancel()
	assert.True(t, f.Loading())
	assert.ErrorIs(t, f.SubmitEmail(context.Background(), "jane@example.com"), ErrInFlight)

	close(api.release)
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, f.Loading())
	assert.Equal(t, 1, api.calls)

	require.NoError(t, f.SubmitEmail(context.Background(), "jane@example.com"))
	assert.Equal(t, AwaitingOTP, f.Stage())
	assert.Equal(t, 2, api.calls)
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "awaiting-otp", AwaitingOTP.String())
	assert.Equal(t, "awaiting-reset", AwaitingReset.String())
	assert.Equal(t, "stage(7)", Stage(7).String())
}

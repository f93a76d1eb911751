package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktrack/internal/db"
	"worktrack/internal/repo"
	"worktrack/internal/session"
)

func newService(t *testing.T) *Service {
	t.Helper()
	g, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(g))
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(repo.NewUserStore(g), repo.NewProfileStore(g), session.NewMemoryStore(),
		Options{Secret: "test-secret", TTL: time.Hour}, log)
}

func TestSignUpRolesAndSignIn(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	require.NoError(t, s.SignUp(ctx, SignUpInput{Email: "boss@example.com", Password: "pw-boss", FullName: "Kofi Boateng", Department: "Commercial"}))
	require.NoError(t, s.SignUp(ctx, SignUpInput{Email: "ama@example.com", Password: "pw-ama", FullName: "Ama Mensah", Department: "Clinic"}))
	assert.ErrorIs(t, s.SignUp(ctx, SignUpInput{Email: "AMA@example.com", Password: "x"}), ErrEmailTaken)

	boss, _, err := s.SignIn(ctx, "boss@example.com", "pw-boss")
	require.NoError(t, err)
	assert.True(t, boss.IsAdmin())

	ama, tok, err := s.SignIn(ctx, "ama@example.com", "pw-ama")
	require.NoError(t, err)
	assert.False(t, ama.IsAdmin())
	assert.Equal(t, "Ama Mensah", ama.FullName)
	assert.Equal(t, "Clinic", ama.Department)

	got, err := s.Authenticate(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, ama.ID, got.ID)

	_, _, err = s.SignIn(ctx, "ama@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.SignIn(ctx, "ghost@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestConcurrentSignUpsGetOneAdmin(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.SignUp(ctx, SignUpInput{Email: fmt.Sprintf("u%d@example.com", i), Password: "pw"})
		}(i)
	}
	wg.Wait()

	admins := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		sess, _, err := s.SignIn(ctx, fmt.Sprintf("u%d@example.com", i), "pw")
		require.NoError(t, err)
		if sess.IsAdmin() {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestSignOutInvalidatesToken(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	require.NoError(t, s.SignUp(ctx, SignUpInput{Email: "a@example.com", Password: "pw"}))

	sess, tok, err := s.SignIn(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, s.SignOut(ctx, sess))
	require.NoError(t, s.SignOut(ctx, sess))

	_, err = s.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	require.NoError(t, s.SignUp(ctx, SignUpInput{Email: "a@example.com", Password: "pw"}))
	_, tok, err := s.SignIn(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, tok+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := *s
	other.secret = []byte("another-secret")
	_, err = other.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

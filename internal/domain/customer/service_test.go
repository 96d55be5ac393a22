package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/pkg/apperr"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendWelcomeEmail(ctx context.Context, userEmail, userName string) error {
	m.sent = append(m.sent, userEmail)
	return m.err
}

func newTestService(t *testing.T, mailer WelcomeMailer) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &Customer{})
	return NewService(db, auth.NewPasswordManager(testutil.Config()), mailer, logger.Discard()), db
}

func validRequest() *RegisterRequest {
	return &RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	}
}

func TestRegisterStoresDigest(t *testing.T) {
	mailer := &recordingMailer{}
	s, db := newTestService(t, mailer)

	c, err := s.Register(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.False(t, c.IsAdmin)

	var stored Customer
	require.NoError(t, db.First(&stored, c.ID).Error)
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret-pass")))
	assert.Equal(t, []string{"alice@example.com"}, mailer.sent)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *RegisterRequest)
		message string
	}{
		{name: "short username", mutate: func(r *RegisterRequest) { r.Username = "al" }, message: "Username must be at least 3 characters"},
		{name: "short email", mutate: func(r *RegisterRequest) { r.Email = "a@b" }, message: "Email must be at least 4 characters"},
		{name: "malformed email", mutate: func(r *RegisterRequest) { r.Email = "not-an-email" }, message: "Email address is not valid"},
		{name: "mismatched passwords", mutate: func(r *RegisterRequest) { r.ConfirmPassword = "other-pass" }, message: "Passwords do not match"},
		{name: "short password", mutate: func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "abc", "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, db := newTestService(t, nil)
			req := validRequest()
			tt.mutate(req)

			_, err := s.Register(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			if tt.message != "" {
				assert.Equal(t, tt.message, apperr.PublicMessage(err))
			}

			var count int64
			db.Model(&Customer{}).Count(&count)
			assert.Zero(t, count)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, db := newTestService(t, nil)

	_, err := s.Register(context.Background(), validRequest())
	require.NoError(t, err)

	dup := validRequest()
	dup.Username = "alice2"
	dup.Email = "  ALICE@example.com "
	_, err = s.Register(context.Background(), dup)
	require.Error(t, err)
	assert.Equal(t, "Account with this email already exists", apperr.PublicMessage(err))

	var count int64
	db.Model(&Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterSurvivesMailerFailure(t *testing.T) {
	s, _ := newTestService(t, &recordingMailer{err: errors.New("smtp down")})

	c, err := s.Register(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
}

func TestAuthenticate(t *testing.T) {
	s, _ := newTestService(t, nil)
	_, err := s.Register(context.Background(), validRequest())
	require.NoError(t, err)

	c, err := s.Authenticate("Alice@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Username)
	assert.NotNil(t, c.LastLoginAt)

	_, wrongPassword := s.Authenticate("alice@example.com", "nope-nope")
	_, unknownEmail := s.Authenticate("bob@example.com", "s3cret-pass")
	for _, err := range []error{wrongPassword, unknownEmail} {
		require.Error(t, err)
		assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
		assert.Equal(t, "Wrong email or password", apperr.PublicMessage(err))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s, _ := newTestService(t, nil)

	_, err := s.GetByID(42)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEnsureAdmin(t *testing.T) {
	s, _ := newTestService(t, nil)

	admin, err := s.EnsureAdmin("root", "root@example.com", "admin-pass")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	again, err := s.EnsureAdmin("root", "root@example.com", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	_, err = s.Register(context.Background(), &RegisterRequest{
		Username: "carol", Email: "carol@example.com", Password: "carol-pass", ConfirmPassword: "carol-pass",
	})
	require.NoError(t, err)

	promoted, err := s.EnsureAdmin("carol", "carol@example.com", "ignored")
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	reloaded, err := s.GetByID(promoted.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsAdmin)
}

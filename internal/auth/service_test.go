package auth

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/fitgear/storefront-backend/internal/mail"
	"github.com/fitgear/storefront-backend/internal/users"
	pkgauth "github.com/fitgear/storefront-backend/pkg/auth"
	"github.com/fitgear/storefront-backend/pkg/config"
	"github.com/fitgear/storefront-backend/pkg/db/models"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/fitgear/storefront-backend/pkg/logger"
	"github.com/fitgear/storefront-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	createFn           func(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	findByEmailFn      func(ctx context.Context, email string) (*models.User, error)
	findByIDFn         func(ctx context.Context, id uuid.UUID) (*models.User, error)
	findByResetTokenFn func(ctx context.Context, token string) (*models.User, error)

	storedToken       string
	storedExpiry      time.Time
	updatedHash       string
	updatedPermsID    uuid.UUID
	updatedPermsValue []string
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	return s.createFn(ctx, dto)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findByEmailFn(ctx, email)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubUserRepo) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return s.findByResetTokenFn(ctx, token)
}

func (s *stubUserRepo) SetResetToken(_ context.Context, _ uuid.UUID, token string, expiry time.Time) error {
	s.storedToken = token
	s.storedExpiry = expiry
	return nil
}

func (s *stubUserRepo) UpdatePasswordAndClearReset(_ context.Context, _ uuid.UUID, hash string) error {
	s.updatedHash = hash
	return nil
}

func (s *stubUserRepo) UpdatePermissions(_ context.Context, id uuid.UUID, permissions []string) error {
	s.updatedPermsID = id
	s.updatedPermsValue = permissions
	return nil
}

type stubMailer struct {
	sent    []mail.Message
	failErr error
}

func (s *stubMailer) Send(_ context.Context, msg mail.Message) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.sent = append(s.sent, msg)
	return nil
}

func fastPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
		ResetTokenBytes:  20,
		ResetTokenTTL:    time.Hour,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 60,
		CookieName:        "token",
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, mailer *stubMailer) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		Mailer:         mailer,
		Logger:         logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		JWTConfig:      testJWTConfig(),
		PasswordConfig: fastPasswordConfig(),
		FrontendURL:    "https://shop.example.com",
	})
	require.NoError(t, err)
	return svc
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, fastPasswordConfig())
	require.NoError(t, err)
	return hash
}

func TestSignup_GrantsDefaultPermissionsAndLowercasesEmail(t *testing.T) {
	var created users.CreateUserDTO
	repo := &stubUserRepo{
		createFn: func(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
			created = dto
			user := dto.ToModel()
			user.ID = uuid.New()
			return user, nil
		},
	}
	svc := newTestService(t, repo, &stubMailer{})

	session, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "  Jo@Example.COM ",
		Name:     "Jo",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, "jo@example.com", created.Email)
	assert.ElementsMatch(t,
		[]string{"USER", "ITEMCREATE", "ITEMUPDATE", "ITEMDELETE"},
		created.ToModel().Permissions,
	)
	assert.NotEmpty(t, session.Token)
	require.NotNil(t, session.User)
	assert.Equal(t, "jo@example.com", session.User.Email)

	claims, err := pkgauth.ParseSessionToken(testJWTConfig(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{
		createFn: func(_ context.Context, _ users.CreateUserDTO) (*models.User, error) {
			return nil, fmt.Errorf("UNIQUE constraint failed: users.email")
		},
	}
	svc := newTestService(t, repo, &stubMailer{})

	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "jo@example.com",
		Name:     "Jo",
		Password: "hunter2hunter2",
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestSignin_UnknownEmail(t *testing.T) {
	repo := &stubUserRepo{
		findByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(t, repo, &stubMailer{})

	_, err := svc.Signin(context.Background(), SigninRequest{Email: "nobody@example.com", Password: "whatever"})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInvalidCredentials, typed.Code())
}

func TestSignin_WrongPassword(t *testing.T) {
	repo := &stubUserRepo{
		findByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: "jo@example.com", PasswordHash: hashFor(t, "correct-horse")}, nil
		},
	}
	svc := newTestService(t, repo, &stubMailer{})

	_, err := svc.Signin(context.Background(), SigninRequest{Email: "jo@example.com", Password: "battery-staple"})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInvalidCredentials, typed.Code())
}

func TestSignin_Success(t *testing.T) {
	userID := uuid.New()
	repo := &stubUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			assert.Equal(t, "jo@example.com", email)
			return &models.User{ID: userID, Email: email, PasswordHash: hashFor(t, "correct-horse")}, nil
		},
	}
	svc := newTestService(t, repo, &stubMailer{})

	session, err := svc.Signin(context.Background(), SigninRequest{Email: "JO@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, userID, session.User.ID)
}

func TestRequestReset_UnknownEmailSucceedsSilently(t *testing.T) {
	repo := &stubUserRepo{
		findByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	mailer := &stubMailer{}
	svc := newTestService(t, repo, mailer)

	err := svc.RequestReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestRequestReset_StoresTokenAndSendsLink(t *testing.T) {
	userID := uuid.New()
	repo := &stubUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: userID, Email: email}, nil
		},
	}
	mailer := &stubMailer{}
	svc := newTestService(t, repo, mailer)

	before := time.Now().UTC()
	err := svc.RequestReset(context.Background(), "jo@example.com")
	require.NoError(t, err)

	assert.Len(t, repo.storedToken, 40)
	assert.WithinDuration(t, before.Add(time.Hour), repo.storedExpiry, 5*time.Second)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jo@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].HTMLBody, repo.storedToken)
}

func TestRequestReset_MailFailureDoesNotFail(t *testing.T) {
	repo := &stubUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email}, nil
		},
	}
	mailer := &stubMailer{failErr: fmt.Errorf("smtp down")}
	svc := newTestService(t, repo, mailer)

	err := svc.RequestReset(context.Background(), "jo@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, repo.storedToken)
}

func TestResetPassword_MismatchedConfirmation(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubMailer{})

	_, err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		ResetToken:      "tok",
		Password:        "new-password-1",
		ConfirmPassword: "new-password-2",
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestResetPassword_UnknownToken(t *testing.T) {
	repo := &stubUserRepo{
		findByResetTokenFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(t, repo, &stubMailer{})

	_, err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		ResetToken:      "gone",
		Password:        "new-password-1",
		ConfirmPassword: "new-password-1",
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeTokenInvalid, typed.Code())
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	token := "aabbcc"
	expired := time.Now().UTC().Add(-time.Minute)
	repo := &stubUserRepo{
		findByResetTokenFn: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: uuid.New(), ResetToken: &token, ResetTokenExpiry: &expired}, nil
		},
	}
	svc := newTestService(t, repo, &stubMailer{})

	_, err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		ResetToken:      token,
		Password:        "new-password-1",
		ConfirmPassword: "new-password-1",
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeTokenExpired, typed.Code())
}

func TestResetPassword_Success(t *testing.T) {
	token := "aabbcc"
	expiry := time.Now().UTC().Add(30 * time.Minute)
	userID := uuid.New()
	repo := &stubUserRepo{
		findByResetTokenFn: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{
				ID:               userID,
				Email:            "jo@example.com",
				PasswordHash:     hashFor(t, "old-password-1"),
				Permissions:      pq.StringArray{"USER"},
				ResetToken:       &token,
				ResetTokenExpiry: &expiry,
			}, nil
		},
	}
	svc := newTestService(t, repo, &stubMailer{})

	session, err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		ResetToken:      token,
		Password:        "new-password-1",
		ConfirmPassword: "new-password-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, repo.updatedHash)
	valid, err := security.VerifyPassword("new-password-1", repo.updatedHash)
	require.NoError(t, err)
	assert.True(t, valid)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, userID, session.User.ID)
}

func TestUpdatePermissions_RequiresElevatedTag(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubMailer{})
	actor := &models.User{ID: uuid.New(), Permissions: pq.StringArray{"USER", "ITEMCREATE"}}

	_, err := svc.UpdatePermissions(context.Background(), actor, UpdatePermissionsRequest{
		UserID:      uuid.New(),
		Permissions: []string{"ADMIN"},
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestUpdatePermissions_RejectsUnknownTag(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubMailer{})
	actor := &models.User{ID: uuid.New(), Permissions: pq.StringArray{"ADMIN"}}

	_, err := svc.UpdatePermissions(context.Background(), actor, UpdatePermissionsRequest{
		UserID:      uuid.New(),
		Permissions: []string{"SUPERUSER"},
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdatePermissions_Success(t *testing.T) {
	targetID := uuid.New()
	repo := &stubUserRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Email: "target@example.com", Permissions: pq.StringArray{"USER"}}, nil
		},
	}
	svc := newTestService(t, repo, &stubMailer{})
	actor := &models.User{ID: uuid.New(), Permissions: pq.StringArray{"USER", "PERMISSIONUPDATE"}}

	updated, err := svc.UpdatePermissions(context.Background(), actor, UpdatePermissionsRequest{
		UserID:      targetID,
		Permissions: []string{"USER", "ADMIN"},
	})
	require.NoError(t, err)

	assert.Equal(t, targetID, repo.updatedPermsID)
	assert.Equal(t, []string{"USER", "ADMIN"}, repo.updatedPermsValue)
	assert.Equal(t, []string{"USER", "ADMIN"}, updated.Permissions)
}

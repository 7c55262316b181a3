package user_test

import (
	"context"
	"errors"
	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/testutil"
	"recipe-catalog/pkg/jwt"
	"recipe-catalog/pkg/user"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) SendMail(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}

type fixture struct {
	db     *gorm.DB
	jwt    jwt.JWTService
	mailer *recordingMailer
	svc    user.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:     testutil.NewDB(t),
		jwt:    jwt.NewJWTService("test-secret", time.Hour),
		mailer: &recordingMailer{},
	}
	svc, err := user.NewUserService(user.NewUserRepository(f.db), f.jwt, f.mailer, bcrypt.MinCost)
	require.NoError(t, err)
	f.svc = svc
	return f
}

// racingRepository never sees an existing email, as when two signups check
// before either has inserted.
type racingRepository struct {
	user.UserRepository
}

func (racingRepository) CheckUserByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func signupRequest() domain.SignupRequest {
	return domain.SignupRequest{
		Email:    "Cook@Example.com ",
		FullName: "Ada Cook",
		Password: "correct-horse",
	}
}

func TestSignup(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Equal(t, "cook@example.com", res.Email)
	assert.Equal(t, "Ada Cook", res.FullName)

	var stored entities.User
	require.NoError(t, f.db.First(&stored, res.ID).Error)
	assert.NotEqual(t, "correct-horse", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct-horse")))

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "cook@example.com", f.mailer.sent[0].to)
	assert.Contains(t, f.mailer.sent[0].body, "Ada Cook")
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	again := signupRequest()
	again.Email = "cook@example.com"
	again.FullName = "Someone Else"
	_, err = f.svc.Signup(ctx, again)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	var count int64
	require.NoError(t, f.db.Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSignupUniqueIndexDecidesRace(t *testing.T) {
	f := newFixture(t)
	svc, err := user.NewUserService(racingRepository{user.NewUserRepository(f.db)}, f.jwt, f.mailer, bcrypt.MinCost)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	_, err = svc.Signup(ctx, signupRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	var count int64
	require.NoError(t, f.db.Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNewUserServiceClampsCost(t *testing.T) {
	f := newFixture(t)

	for _, cost := range []int{0, -1, bcrypt.MaxCost + 1} {
		svc, err := user.NewUserService(user.NewUserRepository(f.db), f.jwt, f.mailer, cost)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	}
}

func TestSignupMailFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("smtp down")

	_, err := f.svc.Signup(context.Background(), signupRequest())
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	res, err := f.svc.Login(ctx, domain.LoginRequest{Email: "COOK@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.TokenType, res.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	claims, err := f.jwt.GetClaimsByToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.AuthClaims{
		Email:    "cook@example.com",
		FullName: "Ada Cook",
		UserID:   created.ID,
	}, claims)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	_, wrongPassword := f.svc.Login(ctx, domain.LoginRequest{Email: "cook@example.com", Password: "wrong-password"})
	_, unknownEmail := f.svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	me, err := f.svc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, me.Email)
	assert.False(t, me.CreatedAt.IsZero())

	_, err = f.svc.Me(ctx, created.ID+100)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

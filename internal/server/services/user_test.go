package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/fadhilmh/fadhil-app-api/internal/common"
	"github.com/fadhilmh/fadhil-app-api/internal/server/config"
	"github.com/fadhilmh/fadhil-app-api/internal/server/models"
)

// --- helpers ---

type fakeUsersRepo struct {
	user      *models.User
	createErr error

	findByLoginCalls int
	findByIDCalls    int
	created          *models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = primitive.NewObjectID()
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	f.findByLoginCalls++
	if f.user == nil || (f.user.Username != login && f.user.Email != login) {
		return nil, common.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.findByIDCalls++
	if f.user == nil || f.user.ID.Hex() != id {
		return nil, common.ErrNotFound
	}
	return f.user, nil
}

func testUser(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func newUserService(repo *fakeUsersRepo, secret string) *UserService {
	cfg := &config.Config{
		SecretKey:             secret,
		TokenValidityDuration: 3600 * time.Second,
	}
	return NewUserService(repo, cfg)
}

// --- login ---

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{user: testUser(t, "alice", "secret1")}
	svc := newUserService(repo, "k")

	res, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "alice", res.Profile["username"])
	assert.NotContains(t, res.Profile, "password")
	assert.NotContains(t, res.Profile, "_id")
	assert.NotContains(t, res.Profile, "createdAt")
	assert.NotContains(t, res.Profile, "updatedAt")
	assert.NotEmpty(t, res.Token)
}

func TestLogin_ByEmail(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{user: testUser(t, "alice", "secret1")}
	svc := newUserService(repo, "k")

	res, err := svc.Login(context.Background(), Credentials{Username: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Profile["username"])
}

func TestLogin_ValidationSkipsLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		creds   Credentials
		message string
	}{
		{"empty username", Credentials{Password: "secret1"}, `"username" is required`},
		{"empty password", Credentials{Username: "alice"}, `"password" is required`},
		{"short password", Credentials{Username: "alice", Password: "12345"}, `"password" length must be at least 6 characters long`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeUsersRepo{user: testUser(t, "alice", "secret1")}
			svc := newUserService(repo, "k")

			_, err := svc.Login(context.Background(), tc.creds)
			require.Error(t, err)
			assert.Equal(t, common.KindValidation, common.KindOf(err))
			assert.Equal(t, tc.message, err.Error())
			assert.Zero(t, repo.findByLoginCalls, "directory lookup must not run on invalid input")
		})
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{}
	svc := newUserService(repo, "k")

	_, err := svc.Login(context.Background(), Credentials{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
	assert.Equal(t, "User not found, wrong username!", err.Error())
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{user: testUser(t, "alice", "secret1")}
	svc := newUserService(repo, "k")

	_, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "wrong12"})
	require.Error(t, err)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
	assert.Equal(t, "Wrong password!", err.Error())
}

func TestLogin_MissingSecret_Idempotent(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{user: testUser(t, "alice", "secret1")}
	svc := newUserService(repo, "")

	for i := 0; i < 2; i++ {
		_, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "secret1"})
		require.Error(t, err)
		assert.Equal(t, common.KindConfiguration, common.KindOf(err))
		assert.Equal(t, "Secret key not found, can't check password!", err.Error())
	}
}

func TestLogin_TokenExpiryClaim(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{user: testUser(t, "alice", "secret1")}
	svc := newUserService(repo, "k")

	res, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("k"), nil
	})
	require.NoError(t, err)

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	iat, ok := claims["iat"].(float64)
	require.True(t, ok)
	assert.Equal(t, float64(3600), exp-iat)
	assert.NotContains(t, claims, "password")
}

func TestLogin_LegacyClaimsCarryFullDocument(t *testing.T) {
	t.Parallel()

	user := testUser(t, "alice", "secret1")
	repo := &fakeUsersRepo{user: user}
	svc := NewUserService(repo, &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		LegacyTokenClaims:     true,
	})

	res, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("k"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, user.PasswordHash, claims["password"])
	assert.Equal(t, user.ID.Hex(), claims["_id"])
}

// --- register ---

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{}
	svc := newUserService(repo, "k")

	profile, err := svc.Register(context.Background(), "bob", "bob@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "bob", profile["username"])
	assert.NotContains(t, profile, "password")

	require.NotNil(t, repo.created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("secret1")))
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{createErr: common.ErrAlreadyExists}
	svc := newUserService(repo, "k")

	_, err := svc.Register(context.Background(), "bob", "bob@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
	assert.Equal(t, "User already exists!", err.Error())
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := newUserService(&fakeUsersRepo{}, "k")

	_, err := svc.Register(context.Background(), "bob", "", "secret1")
	require.Error(t, err)
	assert.Equal(t, `"email" is required`, err.Error())

	_, err = svc.Register(context.Background(), "bob", "bob@example.com", "123")
	require.Error(t, err)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}

// --- profile ---

func TestProfile_RoundTrip(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{user: testUser(t, "alice", "secret1")}
	svc := newUserService(repo, "k")

	res, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	profile, err := svc.Profile(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile["username"])
	assert.NotContains(t, profile, "password")
}

func TestProfile_InvalidToken(t *testing.T) {
	t.Parallel()

	svc := newUserService(&fakeUsersRepo{}, "k")

	_, err := svc.Profile(context.Background(), "not.a.jwt")
	require.Error(t, err)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
}

func TestProfile_UnknownUser(t *testing.T) {
	t.Parallel()

	user := testUser(t, "alice", "secret1")
	repo := &fakeUsersRepo{user: user}
	svc := newUserService(repo, "k")

	res, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	repo.user = nil // simulate the account disappearing after issuance
	_, err = svc.Profile(context.Background(), res.Token)
	require.Error(t, err)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
}

func TestTokenCookieMaxAge(t *testing.T) {
	t.Parallel()

	svc := newUserService(&fakeUsersRepo{}, "k")
	assert.Equal(t, 3600*1000, svc.TokenCookieMaxAge())
}

func TestLogin_RepositoryFailure(t *testing.T) {
	t.Parallel()

	repo := &failingRepo{err: errors.New("db down")}
	svc := NewUserService(repo, &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour})

	_, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, common.KindInternal, common.KindOf(err))
	assert.Equal(t, "internal error", err.Error())
}

type failingRepo struct {
	err error
}

func (f *failingRepo) Create(context.Context, *models.User) (*models.User, error) {
	return nil, f.err
}
func (f *failingRepo) FindByLogin(context.Context, string) (*models.User, error) {
	return nil, f.err
}
func (f *failingRepo) FindByID(context.Context, string) (*models.User, error) {
	return nil, f.err
}

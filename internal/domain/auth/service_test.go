package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
	"printledger/internal/domain/catalogs/branch"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockUserRepo struct {
	byID    map[id.ID]*User
	byEmail map[string]*User
}

func newMockUserRepo(users ...*User) *mockUserRepo {
	m := &mockUserRepo{byID: make(map[id.ID]*User), byEmail: make(map[string]*User)}
	for _, u := range users {
		m.byID[u.ID] = u
		m.byEmail[u.Email] = u
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	if _, exists := m.byEmail[user.Email]; exists {
		return apperror.NewDuplicateEntry("user", user.Email)
	}
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	if u, ok := m.byID[userID]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := m.byEmail[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func (m *mockUserRepo) Update(ctx context.Context, user *User) error {
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) ListManagers(ctx context.Context, branchID *id.ID) ([]User, error) {
	var out []User
	for _, u := range m.byID {
		if u.Role != session.RoleManager {
			continue
		}
		if branchID != nil && u.BranchID != *branchID {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

type mockTokenRepo struct {
	byHash map[string]*PasswordResetToken
	used   []id.ID
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{byHash: make(map[string]*PasswordResetToken)}
}

func (m *mockTokenRepo) Save(ctx context.Context, token *PasswordResetToken) error {
	m.byHash[token.TokenHash] = token
	return nil
}

func (m *mockTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*PasswordResetToken, error) {
	if tok, ok := m.byHash[tokenHash]; ok {
		return tok, nil
	}
	return nil, apperror.NewNotFound("reset token", tokenHash)
}

func (m *mockTokenRepo) MarkUsed(ctx context.Context, tokenID id.ID) error {
	m.used = append(m.used, tokenID)
	for _, tok := range m.byHash {
		if tok.ID == tokenID {
			now := time.Now()
			tok.UsedAt = &now
		}
	}
	return nil
}

type mockBranchRepo struct {
	branch.Repository
	existing map[id.ID]bool
}

func (m *mockBranchRepo) Exists(ctx context.Context, branchID id.ID) (bool, error) {
	return m.existing[branchID], nil
}

func testUser(t *testing.T, email, password string, role session.Role) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := NewUser(email, string(hash), role)
	u.Name = "Test User"
	if role == session.RoleManager {
		u.BranchID = id.New()
	}
	return u
}

func newTestService(users *mockUserRepo, tokens *mockTokenRepo, branches *mockBranchRepo) *Service {
	if tokens == nil {
		tokens = newMockTokenRepo()
	}
	if branches == nil {
		branches = &mockBranchRepo{existing: map[id.ID]bool{}}
	}
	return NewService(users, tokens, branches, passthroughTx{},
		NewTokenService(DefaultTokenConfig("test-secret")), DefaultServiceConfig())
}

func TestLogin_Success(t *testing.T) {
	user := testUser(t, "manager@printledger.local", "password123", session.RoleManager)
	svc := newTestService(newMockUserRepo(user), nil, nil)

	result, err := svc.Login(context.Background(), Credentials{
		Email:    "Manager@printledger.local ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotNil(t, result.User.LastLoginAt)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	user := testUser(t, "manager@printledger.local", "password123", session.RoleManager)
	svc := newTestService(newMockUserRepo(user), nil, nil)
	ctx := context.Background()

	_, errUnknown := svc.Login(ctx, Credentials{Email: "nobody@printledger.local", Password: "x"})
	_, errWrong := svc.Login(ctx, Credentials{Email: user.Email, Password: "wrong"})

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	user := testUser(t, "manager@printledger.local", "password123", session.RoleManager)
	repo := newMockUserRepo(user)
	svc := newTestService(repo, nil, nil)
	ctx := context.Background()

	cfg := DefaultServiceConfig()
	for i := 0; i < cfg.MaxLoginAttempts; i++ {
		_, err := svc.Login(ctx, Credentials{Email: user.Email, Password: "wrong"})
		require.Error(t, err)
	}

	// correct password is now rejected until the lock expires
	_, err := svc.Login(ctx, Credentials{Email: user.Email, Password: "password123"})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestLogin_DisabledAccount(t *testing.T) {
	user := testUser(t, "manager@printledger.local", "password123", session.RoleManager)
	user.IsActive = false
	svc := newTestService(newMockUserRepo(user), nil, nil)

	_, err := svc.Login(context.Background(), Credentials{Email: user.Email, Password: "password123"})
	require.Error(t, err)
}

func adminCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{
		UserID: id.New(),
		Role:   session.RoleAdmin,
	})
}

func TestCreateManager(t *testing.T) {
	branchID := id.New()
	repo := newMockUserRepo()
	svc := newTestService(repo, nil, &mockBranchRepo{existing: map[id.ID]bool{branchID: true}})

	user, err := svc.CreateManager(adminCtx(), CreateManagerRequest{
		Name:     "Asha",
		Email:    "asha@printledger.local",
		BranchID: branchID,
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, session.RoleManager, user.Role)
	assert.Equal(t, branchID, user.BranchID)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestCreateManager_ManagerForbidden(t *testing.T) {
	svc := newTestService(newMockUserRepo(), nil, nil)

	ctx := session.WithSession(context.Background(), session.Session{
		UserID: id.New(),
		Role:   session.RoleManager,
	})
	_, err := svc.CreateManager(ctx, CreateManagerRequest{
		Name: "X", Email: "x@printledger.local", BranchID: id.New(), Password: "password123",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestCreateManager_DuplicateEmail(t *testing.T) {
	existing := testUser(t, "asha@printledger.local", "password123", session.RoleManager)
	branchID := id.New()
	svc := newTestService(newMockUserRepo(existing), nil, &mockBranchRepo{existing: map[id.ID]bool{branchID: true}})

	_, err := svc.CreateManager(adminCtx(), CreateManagerRequest{
		Name: "Asha", Email: "asha@printledger.local", BranchID: branchID, Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicateEntry(err))
}

func TestCreateManager_UnknownBranch(t *testing.T) {
	svc := newTestService(newMockUserRepo(), nil, &mockBranchRepo{existing: map[id.ID]bool{}})

	_, err := svc.CreateManager(adminCtx(), CreateManagerRequest{
		Name: "Asha", Email: "asha@printledger.local", BranchID: id.New(), Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPasswordResetFlow(t *testing.T) {
	user := testUser(t, "manager@printledger.local", "oldpassword", session.RoleManager)
	users := newMockUserRepo(user)
	tokens := newMockTokenRepo()
	svc := newTestService(users, tokens, nil)
	ctx := context.Background()

	raw, err := svc.RequestPasswordReset(ctx, user.Email)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	// only the hash is stored
	_, stored := tokens.byHash[raw]
	assert.False(t, stored)

	require.NoError(t, svc.ResetPassword(ctx, raw, "newpassword1"))

	_, err = svc.Login(ctx, Credentials{Email: user.Email, Password: "newpassword1"})
	require.NoError(t, err)

	// token is single-use
	err = svc.ResetPassword(ctx, raw, "anotherpassword")
	require.Error(t, err)
}

func TestRequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	tokens := newMockTokenRepo()
	svc := newTestService(newMockUserRepo(), tokens, nil)

	raw, err := svc.RequestPasswordReset(context.Background(), "nobody@printledger.local")
	require.NoError(t, err)
	assert.Empty(t, raw)
	assert.Empty(t, tokens.byHash)
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capsort/capsort/internal/client/api"
	"github.com/capsort/capsort/internal/client/storage"
	pkgapi "github.com/capsort/capsort/pkg/api"
)

const testServer = "http://localhost:5000"

// mockAPI реализует APIClient для тестов
type mockAPI struct {
	registerFn   func(req pkgapi.RegisterRequest) (*pkgapi.UserResponse, error)
	loginFn      func(req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error)
	adminLoginFn func(req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error)
	meFn         func(token string) (*pkgapi.UserResponse, error)
	forgotFn     func(req pkgapi.ForgotPasswordRequest) (*pkgapi.MessageResponse, error)
	resetFn      func(req pkgapi.ResetPasswordRequest) (*pkgapi.MessageResponse, error)
	calls        []string
}

func (m *mockAPI) BaseURL() string { return testServer }

func (m *mockAPI) Register(_ context.Context, req pkgapi.RegisterRequest) (*pkgapi.UserResponse, error) {
	m.calls = append(m.calls, "register")
	return m.registerFn(req)
}

func (m *mockAPI) Login(_ context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
	m.calls = append(m.calls, "login")
	return m.loginFn(req)
}

func (m *mockAPI) AdminLogin(_ context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
	m.calls = append(m.calls, "admin-login")
	return m.adminLoginFn(req)
}

func (m *mockAPI) Me(_ context.Context, token string) (*pkgapi.UserResponse, error) {
	m.calls = append(m.calls, "me")
	return m.meFn(token)
}

func (m *mockAPI) ForgotPassword(_ context.Context, req pkgapi.ForgotPasswordRequest) (*pkgapi.MessageResponse, error) {
	m.calls = append(m.calls, "forgot")
	return m.forgotFn(req)
}

func (m *mockAPI) ResetPassword(_ context.Context, req pkgapi.ResetPasswordRequest) (*pkgapi.MessageResponse, error) {
	m.calls = append(m.calls, "reset")
	return m.resetFn(req)
}

// mockSessionStorage implements storage.SessionStorage for testing
type mockSessionStorage struct {
	session   *storage.Session
	saveErr   error
	getErr    error
	deleteErr error
}

func (m *mockSessionStorage) SaveSession(_ context.Context, session *storage.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *session
	m.session = &cp
	return nil
}

func (m *mockSessionStorage) GetSession(_ context.Context) (*storage.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.session == nil {
		return nil, storage.ErrSessionNotFound
	}
	cp := *m.session
	return &cp, nil
}

func (m *mockSessionStorage) DeleteSession(_ context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if m.session == nil {
		return storage.ErrSessionNotFound
	}
	m.session = nil
	return nil
}

var (
	fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	jane     = pkgapi.User{ID: 7, FullName: "Jane Student", Email: "jane@example.edu", Role: "student"}
)

func newTestService(a *mockAPI, s *mockSessionStorage) *SessionService {
	svc := NewService(a, s)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func loginOK(user pkgapi.User) func(req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
	return func(req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
		return &pkgapi.LoginResponse{
			Token:     "token-for-" + req.Email,
			ExpiresAt: fixedNow.Add(7 * 24 * time.Hour),
			User:      user,
		}, nil
	}
}

func TestSessionService_Register(t *testing.T) {
	valid := pkgapi.RegisterRequest{
		FullName:      "  Jane Student ",
		ContactNumber: "+63 912 345 6789",
		Email:         " Jane@Example.EDU ",
		Password:      "Passw0rd",
	}

	tests := []struct {
		name      string
		req       pkgapi.RegisterRequest
		apiErr    error
		wantErr   string
		wantCalls int
	}{
		{name: "success", req: valid, wantCalls: 1},
		{
			name:    "weak password rejected locally",
			req:     pkgapi.RegisterRequest{FullName: "Jane", ContactNumber: "0912345678", Email: "jane@example.edu", Password: "password"},
			wantErr: "invalid input: password",
		},
		{
			name:    "bad email rejected locally",
			req:     pkgapi.RegisterRequest{FullName: "Jane", ContactNumber: "0912345678", Email: "nope", Password: "Passw0rd"},
			wantErr: "invalid input: email",
		},
		{
			name:      "server conflict",
			req:       valid,
			apiErr:    &api.StatusError{StatusCode: 409, Message: "User already exists with this email"},
			wantErr:   "registration failed",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockAPI{
				registerFn: func(req pkgapi.RegisterRequest) (*pkgapi.UserResponse, error) {
					assert.Equal(t, "Jane Student", req.FullName)
					assert.Equal(t, "jane@example.edu", req.Email)
					if tt.apiErr != nil {
						return nil, tt.apiErr
					}
					return &pkgapi.UserResponse{User: jane}, nil
				},
			}
			svc := newTestService(m, &mockSessionStorage{})

			user, err := svc.Register(context.Background(), tt.req)

			assert.Len(t, m.calls, tt.wantCalls)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, jane, *user)
		})
	}
}

func TestSessionService_Login(t *testing.T) {
	admin := pkgapi.User{ID: 1, FullName: "Archive Admin", Email: "admin@example.edu", Role: "admin"}

	tests := []struct {
		name     string
		portal   storage.Portal
		email    string
		wantCall string
		wantUser pkgapi.User
	}{
		{name: "student portal", portal: storage.PortalStudent, email: "Jane@example.edu", wantCall: "login", wantUser: jane},
		{name: "admin portal", portal: storage.PortalAdmin, email: "admin@example.edu", wantCall: "admin-login", wantUser: admin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockAPI{loginFn: loginOK(jane), adminLoginFn: loginOK(admin)}
			store := &mockSessionStorage{}
			svc := newTestService(m, store)

			session, err := svc.Login(context.Background(), tt.portal, tt.email, "Passw0rd")
			require.NoError(t, err)

			assert.Equal(t, []string{tt.wantCall}, m.calls)
			assert.Equal(t, tt.portal, session.Portal)
			assert.Equal(t, tt.wantUser, session.User)
			assert.Equal(t, testServer, session.Server)
			assert.Equal(t, fixedNow, session.SavedAt)
			assert.Contains(t, session.Token, "token-for-")

			require.NotNil(t, store.session)
			assert.Equal(t, session.Token, store.session.Token)
		})
	}
}

func TestSessionService_Login_Failures(t *testing.T) {
	t.Run("invalid credentials keeps previous session", func(t *testing.T) {
		previous := &storage.Session{Server: testServer, Token: "old", ExpiresAt: fixedNow.Add(time.Hour)}
		store := &mockSessionStorage{session: previous}
		m := &mockAPI{loginFn: func(pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
			return nil, &api.StatusError{StatusCode: 401, Message: "Invalid credentials"}
		}}

		_, err := newTestService(m, store).Login(context.Background(), storage.PortalStudent, "jane@example.edu", "wrong")
		require.Error(t, err)
		assert.True(t, api.IsUnauthorized(err))
		assert.Equal(t, "old", store.session.Token)
	})

	t.Run("empty password rejected locally", func(t *testing.T) {
		m := &mockAPI{}
		_, err := newTestService(m, &mockSessionStorage{}).Login(context.Background(), storage.PortalStudent, "jane@example.edu", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password is required")
		assert.Empty(t, m.calls)
	})

	t.Run("unknown portal", func(t *testing.T) {
		_, err := newTestService(&mockAPI{}, &mockSessionStorage{}).Login(context.Background(), "faculty", "jane@example.edu", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown portal")
	})

	t.Run("save failure", func(t *testing.T) {
		m := &mockAPI{loginFn: loginOK(jane)}
		store := &mockSessionStorage{saveErr: errors.New("disk full")}

		_, err := newTestService(m, store).Login(context.Background(), storage.PortalStudent, "jane@example.edu", "Passw0rd")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save session")
	})
}

func TestSessionService_Current(t *testing.T) {
	tests := []struct {
		session *storage.Session
		getErr  error
		wantErr error
		name    string
	}{
		{name: "valid", session: &storage.Session{Server: testServer, ExpiresAt: fixedNow.Add(time.Minute)}},
		{name: "missing", wantErr: ErrNotLoggedIn},
		{name: "other server", session: &storage.Session{Server: "https://elsewhere", ExpiresAt: fixedNow.Add(time.Minute)}, wantErr: ErrNotLoggedIn},
		{name: "expired", session: &storage.Session{Server: testServer, ExpiresAt: fixedNow}, wantErr: ErrSessionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockAPI{}, &mockSessionStorage{session: tt.session, getErr: tt.getErr})

			got, err := svc.Current(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testServer, got.Server)
		})
	}

	t.Run("storage error", func(t *testing.T) {
		svc := newTestService(&mockAPI{}, &mockSessionStorage{getErr: errors.New("corrupt")})
		_, err := svc.Current(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotLoggedIn)
	})
}

func TestSessionService_WhoAmI(t *testing.T) {
	stored := func() *storage.Session {
		return &storage.Session{Server: testServer, Token: "tok", User: jane, ExpiresAt: fixedNow.Add(time.Hour)}
	}

	t.Run("refreshes stored profile", func(t *testing.T) {
		renamed := jane
		renamed.FullName = "Jane Q. Student"
		store := &mockSessionStorage{session: stored()}
		m := &mockAPI{meFn: func(token string) (*pkgapi.UserResponse, error) {
			assert.Equal(t, "tok", token)
			return &pkgapi.UserResponse{User: renamed}, nil
		}}

		user, err := newTestService(m, store).WhoAmI(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Jane Q. Student", user.FullName)
		assert.Equal(t, "Jane Q. Student", store.session.User.FullName)
	})

	t.Run("rejected token drops session", func(t *testing.T) {
		store := &mockSessionStorage{session: stored()}
		m := &mockAPI{meFn: func(string) (*pkgapi.UserResponse, error) {
			return nil, &api.StatusError{StatusCode: 401, Message: "Invalid token"}
		}}

		_, err := newTestService(m, store).WhoAmI(context.Background())
		assert.ErrorIs(t, err, ErrSessionRejected)
		assert.Nil(t, store.session)
	})

	t.Run("server failure keeps session", func(t *testing.T) {
		store := &mockSessionStorage{session: stored()}
		m := &mockAPI{meFn: func(string) (*pkgapi.UserResponse, error) {
			return nil, &api.StatusError{StatusCode: 500, Message: "Internal server error"}
		}}

		_, err := newTestService(m, store).WhoAmI(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionRejected)
		assert.NotNil(t, store.session)
	})

	t.Run("expired session does not call server", func(t *testing.T) {
		s := stored()
		s.ExpiresAt = fixedNow.Add(-time.Second)
		m := &mockAPI{}

		_, err := newTestService(m, &mockSessionStorage{session: s}).WhoAmI(context.Background())
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Empty(t, m.calls)
	})
}

func TestSessionService_Logout(t *testing.T) {
	store := &mockSessionStorage{session: &storage.Session{Token: "tok"}}
	svc := newTestService(&mockAPI{}, store)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, store.session)

	assert.ErrorIs(t, svc.Logout(context.Background()), ErrNotLoggedIn)

	store.deleteErr = errors.New("locked")
	err := svc.Logout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete session")
}

func TestSessionService_PasswordReset(t *testing.T) {
	m := &mockAPI{
		forgotFn: func(req pkgapi.ForgotPasswordRequest) (*pkgapi.MessageResponse, error) {
			assert.Equal(t, "jane@example.edu", req.Email)
			return &pkgapi.MessageResponse{Message: "sent"}, nil
		},
		resetFn: func(req pkgapi.ResetPasswordRequest) (*pkgapi.MessageResponse, error) {
			assert.Equal(t, "reset-token", req.Token)
			return &pkgapi.MessageResponse{Message: "Password has been reset successfully"}, nil
		},
	}
	svc := newTestService(m, &mockSessionStorage{})
	ctx := context.Background()

	msg, err := svc.ForgotPassword(ctx, " JANE@example.edu")
	require.NoError(t, err)
	assert.Equal(t, "sent", msg)

	_, err = svc.ForgotPassword(ctx, "not-an-email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input: email")

	msg, err = svc.ResetPassword(ctx, " reset-token\n", "N3wPassword")
	require.NoError(t, err)
	assert.Equal(t, "Password has been reset successfully", msg)

	_, err = svc.ResetPassword(ctx, "reset-token", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newPassword")

	assert.Equal(t, []string{"forgot", "reset"}, m.calls)
}

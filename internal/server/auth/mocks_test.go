package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/capsort/capsort/internal/crypto"
	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/mailer"
	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/internal/server/token"
)

const testSecret = "test-secret-key-for-capsort-0123456789"

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // email -> User
	createError error
	getError    error
	updateError error
	mu          sync.Mutex
	nextID      int64
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Email]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	stored := *user
	m.users[user.Email] = &stored
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.ID == userID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateProfile(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current *models.User
	for email, u := range m.users {
		if u.ID == user.ID {
			current = u
			delete(m.users, email)
			break
		}
	}
	if current == nil {
		return storage.ErrUserNotFound
	}
	if _, taken := m.users[user.Email]; taken {
		m.users[current.Email] = current
		return storage.ErrUserAlreadyExists
	}

	current.FullName = user.FullName
	current.ContactNumber = user.ContactNumber
	current.Email = user.Email
	m.users[current.Email] = current
	return nil
}

func (m *mockUserStorage) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	for _, user := range m.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (m *mockUserStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// mockSender записывает отправленные письма
type mockSender struct {
	err  error
	sent []mailer.Message
	mu   sync.Mutex
}

func (m *mockSender) Send(ctx context.Context, msg mailer.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, msg)
	return "<test@capsort>", nil
}

func (m *mockSender) messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

// mockLedger in-memory реализация ResetLedger
type mockLedger struct {
	used     map[string]bool
	released []string
	mu       sync.Mutex
}

func (m *mockLedger) Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.used[jti] {
		return false, nil
	}
	m.used[jti] = true
	return true, nil
}

func (m *mockLedger) Release(ctx context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.used, jti)
	m.released = append(m.released, jti)
	return nil
}

// mockObserver собирает исходы операций
type mockObserver struct {
	outcomes map[string]int
	mu       sync.Mutex
}

func (m *mockObserver) ObserveAuth(operation, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[operation+":"+outcome]++
}

type testEnv struct {
	service  *Service
	users    *mockUserStorage
	sender   *mockSender
	tokens   *token.Service
	hasher   *crypto.PasswordHasher
	observer *mockObserver
}

func tokenConfig() token.Config {
	return token.Config{
		Secret:     []byte(testSecret),
		Issuer:     "capsort-test",
		SessionTTL: time.Hour,
		ResetTTL:   time.Hour,
	}
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	env := &testEnv{
		users:    newMockUserStorage(),
		sender:   &mockSender{},
		tokens:   token.NewService(tokenConfig()),
		hasher:   crypto.NewPasswordHasher(4),
		observer: &mockObserver{outcomes: map[string]int{}},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{WithObserver(env.observer)}, opts...)
	env.service = NewService(logger, env.users, env.hasher, env.tokens, env.sender, Config{
		FrontendURL: "https://capsort.example.com/",
		MailTimeout: 5 * time.Second,
	}, opts...)

	return env
}

// seedUser создает пользователя напрямую в хранилище
func (e *testEnv) seedUser(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := e.hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	user := &models.User{
		FullName:      "Seeded User",
		ContactNumber: "+15551234567",
		Email:         email,
		PasswordHash:  hash,
		Role:          role,
	}
	if err := e.users.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func errorsAlreadyExists() error {
	return storage.ErrUserAlreadyExists
}

package handlers

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/iudanet/fieldkeeper/internal/models"
	"github.com/iudanet/fieldkeeper/internal/server/storage"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserStorage is an in-memory UserStorage for testing
type mockUserStorage struct {
	users           map[string]*models.User // username -> User
	createError     error
	getUserError    error
	updateLastLogin func(ctx context.Context, userID string, loginTime time.Time) error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, loginTime time.Time) error {
	if m.updateLastLogin != nil {
		return m.updateLastLogin(ctx, userID, loginTime)
	}
	return nil
}

// mockTokenStorage is an in-memory TokenStorage for testing
type mockTokenStorage struct {
	tokens      map[string]*models.RefreshToken // hash -> token
	saveError   error
	getError    error
	deleteError error
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
}

func (m *mockTokenStorage) SaveRefreshToken(_ context.Context, token *models.RefreshToken) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(_ context.Context, hash string) (*models.RefreshToken, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	token, ok := m.tokens[hash]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return token, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(_ context.Context, hash string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, ok := m.tokens[hash]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, hash)
	return nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(_ context.Context, now time.Time) (int, error) {
	n := 0
	for hash, token := range m.tokens {
		if token.IsExpired(now) {
			delete(m.tokens, hash)
			n++
		}
	}
	return n, nil
}

// mockFieldStorage is an in-memory FieldStorage for testing
type mockFieldStorage struct {
	reports map[string]map[string]models.Report      // userID -> id -> report
	staff   map[string]map[string]models.StaffRecord // userID -> id -> record
	err     error
	saves   int
	mu      sync.Mutex
}

func newMockFieldStorage() *mockFieldStorage {
	return &mockFieldStorage{
		reports: make(map[string]map[string]models.Report),
		staff:   make(map[string]map[string]models.StaffRecord),
	}
}

func (m *mockFieldStorage) SaveReport(_ context.Context, userID string, report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.reports[userID] == nil {
		m.reports[userID] = make(map[string]models.Report)
	}
	m.reports[userID][report.ID] = *report
	m.saves++
	return nil
}

func (m *mockFieldStorage) DeleteReport(_ context.Context, userID, reportID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.reports[userID][reportID]; !ok {
		return storage.ErrRecordNotFound
	}
	delete(m.reports[userID], reportID)
	return nil
}

func (m *mockFieldStorage) ListReports(_ context.Context, userID string) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	reports := []models.Report{}
	for _, r := range m.reports[userID] {
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].CapturedAt.Before(reports[j].CapturedAt) })
	return reports, nil
}

func (m *mockFieldStorage) AddStaff(_ context.Context, userID string, staff *models.StaffRecord) (bool, error) {
	return m.putStaff(userID, staff, false)
}

func (m *mockFieldStorage) UpdateStaff(_ context.Context, userID string, staff *models.StaffRecord) (bool, error) {
	return m.putStaff(userID, staff, true)
}

func (m *mockFieldStorage) putStaff(userID string, staff *models.StaffRecord, mustExist bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.staff[userID] == nil {
		m.staff[userID] = make(map[string]models.StaffRecord)
	}
	current, ok := m.staff[userID][staff.ID]
	if !ok && mustExist {
		return false, storage.ErrRecordNotFound
	}
	if ok && !staff.IsNewerThan(current) {
		return false, nil
	}
	m.staff[userID][staff.ID] = *staff
	m.saves++
	return true, nil
}

func (m *mockFieldStorage) ListStaff(_ context.Context, userID string) ([]models.StaffRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	staff := []models.StaffRecord{}
	for _, s := range m.staff[userID] {
		staff = append(staff, s)
	}
	sort.Slice(staff, func(i, j int) bool { return staff[i].FullName < staff[j].FullName })
	return staff, nil
}

// mockIdempotencyStorage is an in-memory IdempotencyStorage for testing
type mockIdempotencyStorage struct {
	actions  map[string]*storage.ProcessedAction // userID/key -> action
	getError error
	mu       sync.Mutex
}

func newMockIdempotencyStorage() *mockIdempotencyStorage {
	return &mockIdempotencyStorage{actions: make(map[string]*storage.ProcessedAction)}
}

func (m *mockIdempotencyStorage) GetProcessedAction(_ context.Context, userID, key string) (*storage.ProcessedAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	action, ok := m.actions[userID+"/"+key]
	if !ok {
		return nil, storage.ErrActionNotProcessed
	}
	return action, nil
}

func (m *mockIdempotencyStorage) SaveProcessedAction(_ context.Context, action *storage.ProcessedAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := action.UserID + "/" + action.Key
	if _, ok := m.actions[id]; !ok {
		m.actions[id] = action
	}
	return nil
}

func (m *mockIdempotencyStorage) DeleteProcessedBefore(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, action := range m.actions {
		if action.CreatedAt.Before(before) {
			delete(m.actions, id)
			n++
		}
	}
	return n, nil
}

var (
	_ storage.UserStorage        = (*mockUserStorage)(nil)
	_ storage.TokenStorage       = (*mockTokenStorage)(nil)
	_ storage.FieldStorage       = (*mockFieldStorage)(nil)
	_ storage.IdempotencyStorage = (*mockIdempotencyStorage)(nil)
)

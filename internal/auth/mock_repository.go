package auth

import (
	"sync"
	"time"
)

type mockRepository struct {
	users    map[string]*User
	failures []LoginFailure
	nextID   uint
	mu       sync.RWMutex
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users: make(map[string]*User),
	}
}

func (r *mockRepository) CreateUser(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrUsernameTaken
	}

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *mockRepository) GetUserByID(id uint) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.findByID(id)
	if user == nil {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *mockRepository) GetUserByUsername(username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[username]
	if !exists {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *mockRepository) UpdateFailedAttempts(userID uint, attempts int, lockUntil *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByID(userID)
	if user == nil {
		return ErrUserNotFound
	}
	user.FailedAttempts = attempts
	user.LockUntil = lockUntil
	return nil
}

func (r *mockRepository) ResetFailures(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByID(userID)
	if user == nil {
		return ErrUserNotFound
	}
	user.FailedAttempts = 0
	user.LockUntil = nil
	return nil
}

func (r *mockRepository) TouchLastLogin(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByID(userID)
	if user == nil {
		return ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (r *mockRepository) UpdatePassword(userID uint, passwordHash string, tokenVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByID(userID)
	if user == nil {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.TokenVersion = tokenVersion
	user.FailedAttempts = 0
	user.LockUntil = nil
	user.UpdatedAt = time.Now()
	return nil
}

func (r *mockRepository) RecordFailure(username, ipAddress *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures = append(r.failures, LoginFailure{
		ID:        uint(len(r.failures) + 1),
		Username:  username,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *mockRepository) failureCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.failures)
}

// setUser mutates stored account state directly, bypassing the service.
func (r *mockRepository) setUser(username string, mutate func(*User)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[username]; ok {
		mutate(user)
	}
}

func (r *mockRepository) findByID(id uint) *User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

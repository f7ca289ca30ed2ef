package captcha

import (
	"sync"
	"time"
)

type mockRepository struct {
	challenges map[uint]*Challenge
	nextID     uint
	mu         sync.RWMutex
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		challenges: make(map[uint]*Challenge),
	}
}

func (r *mockRepository) Create(challenge *Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	challenge.ID = r.nextID
	challenge.CreatedAt = time.Now()

	clone := *challenge
	r.challenges[challenge.ID] = &clone
	return nil
}

func (r *mockRepository) GetByID(id uint) (*Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	challenge, exists := r.challenges[id]
	if !exists {
		return nil, ErrChallengeNotFound
	}
	clone := *challenge
	return &clone, nil
}

func (r *mockRepository) MarkConsumed(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	challenge, exists := r.challenges[id]
	if !exists {
		return ErrChallengeNotFound
	}
	challenge.Consumed = true
	return nil
}

func (r *mockRepository) CountRecentByIP(ip string, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, c := range r.challenges {
		if c.IPAddress != nil && *c.IPAddress == ip && c.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

// setChallenge mutates a stored challenge directly, bypassing the service.
func (r *mockRepository) setChallenge(id uint, mutate func(*Challenge)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if challenge, ok := r.challenges[id]; ok {
		mutate(challenge)
	}
}

package admission

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// castingLocker - вход в домен кастинга. release обязателен после успешного acquire.
type castingLocker interface {
	acquire(ctx context.Context, castingID string) (release func(), err error)
}

// domainRegistry держит по одному семафору на кастинг, пока он кому-то нужен.
// Глобальный mutex защищает только карту, не сами операции.
type domainRegistry struct {
	mu      sync.Mutex
	domains map[string]*castingDomain
}

type castingDomain struct {
	sem  *semaphore.Weighted
	refs int
}

func newDomainRegistry() *domainRegistry {
	return &domainRegistry{domains: make(map[string]*castingDomain)}
}

// acquire входит в домен кастинга. Ошибка только если ctx завершился раньше.
func (r *domainRegistry) acquire(ctx context.Context, castingID string) (func(), error) {
	r.mu.Lock()
	d, ok := r.domains[castingID]
	if !ok {
		d = &castingDomain{sem: semaphore.NewWeighted(1)}
		r.domains[castingID] = d
	}
	d.refs++
	r.mu.Unlock()

	if err := d.sem.Acquire(ctx, 1); err != nil {
		r.unref(castingID, d)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			d.sem.Release(1)
			r.unref(castingID, d)
		})
	}, nil
}

func (r *domainRegistry) unref(castingID string, d *castingDomain) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.refs--
	if d.refs == 0 {
		delete(r.domains, castingID)
	}
}

func (r *domainRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.domains)
}

package workers

import (
	"context"
	"sync"
	"time"

	"mwork_admission/internal/logger"
	"mwork_admission/internal/repositories"

	"gorm.io/gorm"
)

type CastingWorker struct {
	db       *gorm.DB
	castings repositories.CastingRepository
	interval time.Duration
	now      func() time.Time

	wg sync.WaitGroup
}

func NewCastingWorker(db *gorm.DB, castings repositories.CastingRepository, interval time.Duration) *CastingWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CastingWorker{db: db, castings: castings, interval: interval, now: time.Now}
}

// Start запускает фоновые задачи для кастингов
func (w *CastingWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.autoCloseCastings(ctx)
}

// Wait ждет остановки после отмены ctx
func (w *CastingWorker) Wait() {
	w.wg.Wait()
}

// autoCloseCastings закрывает набор в кастингах с прошедшей датой.
// Принятые участники остаются, новые заявки получают RoleNotRecruiting.
func (w *CastingWorker) autoCloseCastings(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("casting_worker", "stop", nil)
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce - один проход автозакрытия
func (w *CastingWorker) RunOnce(ctx context.Context) int64 {
	closed, err := w.castings.CloseExpired(w.db.WithContext(ctx), w.now())
	logger.WorkerLog("casting_worker", "auto_close", err)
	if err == nil && closed > 0 {
		logger.Info("auto-closed expired castings", "count", closed)
	}
	return closed
}

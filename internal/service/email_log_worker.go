package service

import (
	"context"
	"log"
	"sync"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
)

const (
	emailLogBatchSize     = 10
	emailLogFlushInterval = 1 * time.Second
)

// EmailLogger records delivery attempts without blocking the caller.
type EmailLogger interface {
	Record(ctx context.Context, entry model.EmailLog)
}

// EmailLogWorker batches delivery logs and writes them in the background.
type EmailLogWorker struct {
	repo repository.EmailLogRepository
	// Channel for async email logging
	logChannel chan model.EmailLog
	done       chan struct{}
	mu         sync.RWMutex
	closed     bool
}

// NewEmailLogWorker creates the worker and starts its flush loop.
func NewEmailLogWorker(repo repository.EmailLogRepository) *EmailLogWorker {
	w := &EmailLogWorker{
		repo:       repo,
		logChannel: make(chan model.EmailLog, 100),
		done:       make(chan struct{}),
	}

	go w.run(context.Background())

	return w
}

// run flushes at emailLogBatchSize entries or every emailLogFlushInterval.
func (w *EmailLogWorker) run(ctx context.Context) {
	defer close(w.done)

	batch := make([]model.EmailLog, 0, emailLogBatchSize)
	ticker := time.NewTicker(emailLogFlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := w.repo.CreateBatch(ctx, batch); err != nil {
			log.Printf("[email-log] failed to write %d entries: %v", len(batch), err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-w.logChannel:
			if !ok {
				// Channel closed, flush remaining logs
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= emailLogBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// Record queues entry; when the queue is full it is written synchronously.
func (w *EmailLogWorker) Record(ctx context.Context, entry model.EmailLog) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		_ = w.repo.Create(ctx, &entry)
		return
	}

	select {
	case w.logChannel <- entry:
	default:
		if err := w.repo.Create(ctx, &entry); err != nil {
			log.Printf("[email-log] failed to write entry for %s: %v", entry.Recipient, err)
		}
	}
}

// Close stops accepting entries and waits for the final flush.
func (w *EmailLogWorker) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.logChannel)
	}
	w.mu.Unlock()
	<-w.done
}

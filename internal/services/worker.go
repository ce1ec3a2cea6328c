package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/karmamatch/internal/logger"
	"alfredoptarigan/karmamatch/internal/models"
)

// IndexQueue accepts resumes that need (re)indexing.
type IndexQueue interface {
	EnqueueJob(resumeID uuid.UUID)
}

type Worker interface {
	IndexQueue
	Start(ctx context.Context)
	Stop()
}

type PendingResumeFinder interface {
	FindPendingIndexing(limit int) ([]models.StoredResume, error)
}

type worker struct {
	resumeRepo   PendingResumeFinder
	indexer      IndexerService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

func NewWorker(
	resumeRepo PendingResumeFinder,
	indexer IndexerService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}

	return &worker{
		resumeRepo:   resumeRepo,
		indexer:      indexer,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

func (w *worker) Start(ctx context.Context) {
	logger.Info().Int("concurrency", w.concurrency).Msg("🚀 Starting index worker")

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	logger.Info().Msg("✅ Index worker started successfully")
}

func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		logger.Info().Msg("🛑 Stopping index worker...")
		close(w.stopChan)
		w.wg.Wait()
		logger.Info().Msg("✅ Index worker stopped")
	})
}

func (w *worker) EnqueueJob(resumeID uuid.UUID) {
	select {
	case w.jobQueue <- resumeID:
		logger.Debug().Str("resume_id", resumeID.String()).Msg("📥 Resume enqueued for indexing")
	case <-w.stopChan:
		logger.Warn().Str("resume_id", resumeID.String()).Msg("⚠️ Worker stopped, cannot enqueue resume")
	default:
		logger.Warn().Str("resume_id", resumeID.String()).Msg("⚠️ Index queue full, leaving resume for the poller")
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			logger.Debug().Int("worker", workerID).Msg("👷 Worker stopped")
			return
		case <-ctx.Done():
			return
		case resumeID := <-w.jobQueue:
			if err := w.indexer.IndexResume(ctx, resumeID); err != nil {
				logger.Error().Err(err).Int("worker", workerID).Str("resume_id", resumeID.String()).Msg("❌ Failed to index resume")
			}
		}
	}
}

// pollPendingJobs picks up resumes left queued, for example by a restart or
// a full queue.
func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			logger.Debug().Msg("🔄 Pending resumes poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.resumeRepo.FindPendingIndexing(10)
			if err != nil {
				logger.Warn().Err(err).Msg("⚠️ Failed to fetch pending resumes")
				continue
			}

			if len(pending) > 0 {
				logger.Info().Int("count", len(pending)).Msg("📋 Found pending resumes")
			}

			for _, resume := range pending {
				w.EnqueueJob(resume.ID)
			}
		}
	}
}

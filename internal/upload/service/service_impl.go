package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/camaraaberta/ceap/internal/config"
	ingestdomain "github.com/camaraaberta/ceap/internal/ingest/domain"
	"github.com/camaraaberta/ceap/internal/upload/domain"
	"github.com/camaraaberta/ceap/internal/upload/queue"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
	Ingest    ingestdomain.Service
	Store     domain.StatusStore
}

type Service struct {
	log    *zap.Logger
	ingest ingestdomain.Service
	store  domain.StatusStore
	queue  *queue.Queue
	done   chan struct{}
}

func New(p Params) domain.Service {
	s := &Service{
		log:    p.Log.Named("upload.service"),
		ingest: p.Ingest,
		store:  p.Store,
		queue:  queue.New(p.Config.UploadQueueSize),
		done:   make(chan struct{}),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.worker()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.queue.Close()
			select {
			case <-s.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
	return s
}

// Submit stages the content into a temp file and queues it. The caller
// gets the queued status back before any processing starts.
func (s *Service) Submit(ctx context.Context, filename string, size int64, content io.Reader) (domain.Status, error) {
	id := ulid.Make().String()

	staged, err := os.CreateTemp("", "ceap-upload-*.csv")
	if err != nil {
		return domain.Status{}, fmt.Errorf("stage upload: %w", err)
	}
	written, err := io.Copy(staged, content)
	if cerr := staged.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(staged.Name())
		return domain.Status{}, fmt.Errorf("stage upload: %w", err)
	}

	status := domain.Status{
		ID:         id,
		State:      domain.StateQueued,
		Message:    "aguardando processamento",
		Filename:   filename,
		SizeBytes:  written,
		EnqueuedAt: time.Now().UTC(),
	}
	if size > 0 {
		status.SizeBytes = size
	}
	if err := s.store.Put(ctx, status); err != nil {
		os.Remove(staged.Name())
		return domain.Status{}, err
	}

	ok, closed := s.queue.Enqueue(queue.Job{UploadID: id, Path: staged.Name()})
	if !ok {
		os.Remove(staged.Name())
		if closed {
			return domain.Status{}, domain.ErrShuttingDown
		}
		return domain.Status{}, domain.ErrQueueFull
	}

	s.log.Info("upload queued",
		zap.String("upload_id", id),
		zap.String("filename", filename),
		zap.Int64("size_bytes", status.SizeBytes),
	)
	return status, nil
}

func (s *Service) GetStatus(ctx context.Context, id string) (*domain.Status, error) {
	status, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, domain.ErrNotFound
	}
	return status, nil
}

func (s *Service) worker() {
	defer close(s.done)
	for job := range s.queue.Jobs() {
		s.process(job)
	}
}

func (s *Service) process(job queue.Job) {
	ctx := context.Background()
	defer os.Remove(job.Path)

	status, err := s.store.Get(ctx, job.UploadID)
	if err != nil || status == nil {
		s.log.Error("upload status lost before processing",
			zap.String("upload_id", job.UploadID),
			zap.Error(err),
		)
		return
	}

	now := time.Now().UTC()
	status.State = domain.StateProcessing
	status.Message = "processando arquivo"
	status.StartedAt = &now
	if err := s.store.Put(ctx, *status); err != nil {
		s.log.Error("persist processing status", zap.String("upload_id", job.UploadID), zap.Error(err))
	}

	result, err := s.ingest.Process(ctx, job.Path)
	finished := time.Now().UTC()
	status.FinishedAt = &finished
	status.Result = &result
	if err != nil {
		status.State = domain.StateFailed
		status.Message = "processamento falhou"
		status.Error = err.Error()
		s.log.Warn("upload failed",
			zap.String("upload_id", job.UploadID),
			zap.Error(err),
		)
	} else {
		status.State = domain.StateCompleted
		status.Message = "processamento concluido"
	}

	if err := s.store.Put(ctx, *status); err != nil {
		s.log.Error("persist terminal status", zap.String("upload_id", job.UploadID), zap.Error(err))
	}
}

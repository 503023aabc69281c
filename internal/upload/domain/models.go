package domain

import (
	"context"
	"errors"
	"io"
	"time"

	ingestdomain "github.com/camaraaberta/ceap/internal/ingest/domain"
)

type State string

const (
	StateQueued     State = "queued"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Status is the externally visible state of one upload. Result is only
// set on terminal states; Error only on failure.
type Status struct {
	ID         string               `json:"id"`
	State      State                `json:"state"`
	Message    string               `json:"message"`
	Filename   string               `json:"filename"`
	SizeBytes  int64                `json:"size_bytes"`
	EnqueuedAt time.Time            `json:"enqueued_at"`
	StartedAt  *time.Time           `json:"started_at,omitempty"`
	FinishedAt *time.Time           `json:"finished_at,omitempty"`
	Result     *ingestdomain.Result `json:"result,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// StatusStore keeps upload statuses for a bounded retention window.
type StatusStore interface {
	Put(ctx context.Context, status Status) error
	Get(ctx context.Context, id string) (*Status, error)
}

type Service interface {
	// Submit stages the file content and queues it for processing,
	// returning the upload id immediately.
	Submit(ctx context.Context, filename string, size int64, content io.Reader) (Status, error)
	GetStatus(ctx context.Context, id string) (*Status, error)
}

var (
	ErrNotFound     = errors.New("upload_not_found")
	ErrQueueFull    = errors.New("upload_queue_full")
	ErrShuttingDown = errors.New("upload_queue_closed")
)

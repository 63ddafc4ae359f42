package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nexvstar/site/internal/store/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// NoticeSource renders the notification text for a stored record.
type NoticeSource interface {
	Notice(ctx context.Context, kind string, recordID uint64) (subject, body string, err error)
}

type Processor struct {
	repo     *Repo
	source   NoticeSource
	notifier Notifier
	log      *zap.Logger
}

func NewProcessor(repo *Repo, source NoticeSource, notifier Notifier, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{repo: repo, source: source, notifier: notifier, log: log}
}

// Handle runs one job to completion and records the outcome on the job row.
func (p *Processor) Handle(ctx context.Context, jobID string) error {
	start := time.Now()
	_ = p.repo.MarkRunning(ctx, jobID)

	j, err := p.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("get job: %w", err)
	}
	if j.Status == JobSucceeded {
		// redelivered after a lost ack
		return nil
	}

	if err := p.deliver(ctx, j); err != nil {
		_ = p.repo.MarkFailed(ctx, jobID, err.Error())
		return err
	}
	if err := p.repo.MarkSucceeded(ctx, jobID); err != nil {
		return fmt.Errorf("mark succeeded: %w", err)
	}

	if cost := time.Since(start); cost > 2*time.Second {
		p.log.Info("slow notification job", zap.String("job", jobID), zap.Duration("cost", cost))
	}
	return nil
}

func (p *Processor) deliver(ctx context.Context, j *Job) error {
	subject, body, err := p.source.Notice(ctx, j.Kind, j.RecordID)
	if err != nil {
		return fmt.Errorf("render %s %d: %w", j.Kind, j.RecordID, err)
	}
	return p.notifier.Notify(ctx, subject, body)
}

// Pool consumes deliveries with a fixed number of workers. Successes are
// acked, failures nacked without requeue so they dead-letter to the DLQ.
type Pool struct {
	Concurrency int
	Handle      func(ctx context.Context, jobID string) error
	Log         *zap.Logger
}

// Run blocks until ctx is done or deliveries is closed, then waits for
// in-flight jobs.
func (p *Pool) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	n := p.Concurrency
	if n <= 0 {
		n = 1
	}

	jobs := make(chan amqp.Delivery, n*2)
	// in-flight jobs finish after shutdown starts
	workCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				p.process(workCtx, log.With(zap.Int("worker", workerID)), d)
			}
		}(i)
	}

	defer func() {
		close(jobs)
		wg.Wait()
	}()

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			log.Info("worker shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				log.Warn("delivery channel closed")
				return
			}
			select {
			case jobs <- d:
			case <-ctx.Done():
				_ = d.Nack(false, true)
				return
			}
		}
	}
}

func (p *Pool) process(ctx context.Context, log *zap.Logger, d amqp.Delivery) {
	m, err := rabbitmq.DecodeJob(d.Body)
	if err != nil {
		log.Warn("bad message", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	start := time.Now()
	if err := p.Handle(ctx, m.JobID); err != nil {
		log.Warn("job failed", zap.String("job", m.JobID), zap.Duration("cost", time.Since(start)), zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	if err := d.Ack(false); err != nil {
		log.Warn("ack failed", zap.String("job", m.JobID), zap.Error(err))
	}
}

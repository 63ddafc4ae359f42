package notify

import (
	"context"
	"fmt"

	"github.com/nexvstar/site/internal/common"
)

// Publisher hands a stored job id to the broker.
type Publisher interface {
	PublishJob(ctx context.Context, jobID string) error
}

// Queue records a job row and publishes its id. The worker reads the row
// back, so the message body carries nothing but the id.
type Queue struct {
	repo *Repo
	pub  Publisher
}

func NewQueue(repo *Repo, pub Publisher) *Queue {
	return &Queue{repo: repo, pub: pub}
}

func (q *Queue) Enqueue(ctx context.Context, kind string, recordID uint64) error {
	id, err := common.NewULID()
	if err != nil {
		return fmt.Errorf("notify: job id: %w", err)
	}
	job := &Job{
		ID:       id,
		Kind:     kind,
		RecordID: recordID,
		Status:   JobQueued,
	}
	if err := q.repo.CreateJob(ctx, job); err != nil {
		return fmt.Errorf("notify: create job: %w", err)
	}
	if err := q.pub.PublishJob(ctx, job.ID); err != nil {
		_ = q.repo.MarkFailed(ctx, job.ID, "publish: "+err.Error())
		return fmt.Errorf("notify: publish %s: %w", job.ID, err)
	}
	return nil
}

// Requeue republishes jobs stuck in failed, e.g. after a broker outage.
func (q *Queue) Requeue(ctx context.Context, limit int) (int, error) {
	jobs, err := q.repo.ListByStatus(ctx, JobFailed, limit)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, j := range jobs {
		if err := q.pub.PublishJob(ctx, j.ID); err != nil {
			return n, fmt.Errorf("notify: publish %s: %w", j.ID, err)
		}
		n++
	}
	return n, nil
}

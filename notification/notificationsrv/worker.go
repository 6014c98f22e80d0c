package notificationsrv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/logx"
)

// deliverTimeout bounds one delivery attempt on an external channel.
const deliverTimeout = 30 * time.Second

// DeliveryWorker consumes delivery jobs and pushes them out over the
// channels. Failed jobs are re-queued with backoff until their attempts are
// exhausted, then dropped with a log line.
type DeliveryWorker struct {
	queue       notification.JobQueue
	email       notification.EmailSender
	sms         notification.SMSSender
	broadcaster notification.Broadcaster

	workers      int
	dequeueWait  time.Duration
	retryBackoff time.Duration
}

// NewDeliveryWorker creates a worker pool over the queue.
func NewDeliveryWorker(
	queue notification.JobQueue,
	email notification.EmailSender,
	sms notification.SMSSender,
	broadcaster notification.Broadcaster,
	workers int,
	dequeueWait time.Duration,
	retryBackoff time.Duration,
) *DeliveryWorker {
	if workers <= 0 {
		workers = 4
	}
	if dequeueWait <= 0 {
		dequeueWait = 5 * time.Second
	}
	if retryBackoff <= 0 {
		retryBackoff = 30 * time.Second
	}
	return &DeliveryWorker{
		queue:        queue,
		email:        email,
		sms:          sms,
		broadcaster:  broadcaster,
		workers:      workers,
		dequeueWait:  dequeueWait,
		retryBackoff: retryBackoff,
	}
}

// Start launches the worker pool and the delayed-job mover. All goroutines
// stop when ctx is canceled.
func (w *DeliveryWorker) Start(ctx context.Context) {
	logx.Infof("starting %d notification workers", w.workers)

	go w.moveDelayedJobs(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *DeliveryWorker) processJobs(ctx context.Context, workerID int) {
	for {
		select {
		case <-ctx.Done():
			logx.Infof("notification worker %d stopping", workerID)
			return
		default:
			job, err := w.queue.Dequeue(ctx, w.dequeueWait)
			if err != nil {
				logx.Errorf("notification worker %d dequeue: %v", workerID, err)
				continue
			}
			if job == nil {
				continue
			}

			w.process(ctx, job)
		}
	}
}

// process runs one delivery attempt and handles retry bookkeeping.
func (w *DeliveryWorker) process(ctx context.Context, job *notification.DeliveryJob) {
	job.AttemptCount++

	attemptCtx, cancel := context.WithTimeout(ctx, deliverTimeout)
	err := w.deliver(attemptCtx, job)
	cancel()
	if err == nil {
		return
	}

	if job.Exhausted() {
		logx.Errorf("dropping %s job %s after %d attempts: %v", job.Channel, job.ID, job.AttemptCount, err)
		return
	}

	logx.Warnf("%s job %s attempt %d failed, retrying: %v", job.Channel, job.ID, job.AttemptCount, err)
	if err := w.queue.EnqueueDelayed(ctx, job, w.retryBackoff); err != nil {
		logx.Errorf("requeue %s job %s: %v", job.Channel, job.ID, err)
	}
}

func (w *DeliveryWorker) deliver(ctx context.Context, job *notification.DeliveryJob) error {
	switch job.Channel {
	case notification.ChannelEmail:
		return w.email.Send(ctx, job.Recipients, job.Subject, job.Body)
	case notification.ChannelSMS:
		return w.sms.Send(ctx, job.PhoneNumber, job.Message)
	case notification.ChannelBroadcast:
		fields := map[string]string{
			"kind":      string(job.Kind),
			"object_id": job.ObjectID,
			"subject":   job.Subject,
			"body":      job.Body,
		}
		for k, v := range job.Payload {
			fields[k] = v
		}
		payload, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		w.broadcaster.Broadcast(job.Group, payload)
		return nil
	default:
		logx.Warnf("discarding job %s with unknown channel %q", job.ID, job.Channel)
		return nil
	}
}

func (w *DeliveryWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(w.retryBackoff)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("move delayed notification jobs: %v", err)
			} else if count > 0 {
				logx.Infof("moved %d delayed notification jobs to ready", count)
			}
		}
	}
}

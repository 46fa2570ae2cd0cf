package dispatch

import (
	"context"
	"fmt"
	"sync"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/shared/logger"
	"habitat/internal/shared/tenant"
)

// Config sizes the worker pool and bounds retries.
type Config struct {
	Workers    int
	QueueSize  int
	MaxRetries int
	SweepBatch int
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 8
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.SweepBatch <= 0 {
		c.SweepBatch = 100
	}
	return c
}

// task is one unit of asynchronous dispatch work. The tenant scope is
// captured at submission time so the worker re-installs it explicitly; the
// worker never reads ambient state.
type task struct {
	delivery  *notification.Delivery
	tenantID  uint
	hasTenant bool
}

// Dispatcher owns every post-creation mutation of a delivery record. Submit
// queues work on a bounded pool; Dispatch runs the status machine for one
// record; SweepOnce re-attempts retry-eligible pending records.
type Dispatcher struct {
	deliveries notification.DeliveryRepository
	senders    *SenderRegistry
	cfg        Config
	tasks      chan task
	wg         sync.WaitGroup
	startOnce  sync.Once
	stopOnce   sync.Once
	logger     logger.Interface
}

func NewDispatcher(
	deliveries notification.DeliveryRepository,
	senders *SenderRegistry,
	cfg Config,
	logger logger.Interface,
) *Dispatcher {
	cfg = cfg.withDefaults()
	return &Dispatcher{
		deliveries: deliveries,
		senders:    senders,
		cfg:        cfg,
		tasks:      make(chan task, cfg.QueueSize),
		logger:     logger,
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		d.logger.Infow("starting dispatch worker pool",
			"workers", d.cfg.Workers,
			"queue_size", d.cfg.QueueSize,
			"max_retries", d.cfg.MaxRetries,
		)
		for i := 0; i < d.cfg.Workers; i++ {
			d.wg.Add(1)
			go d.worker(i)
		}
	})
}

// Stop drains the queue and waits for in-flight work.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.tasks)
		d.wg.Wait()
		d.logger.Infow("dispatch worker pool stopped")
	})
}

// Submit hands a persisted record to the pool. The tenant scope on ctx is
// captured into the task; the call blocks only when the bounded queue is
// full, so a fan-out burst queues instead of spawning goroutines.
func (d *Dispatcher) Submit(ctx context.Context, delivery *notification.Delivery) error {
	if delivery == nil {
		return fmt.Errorf("delivery is nil")
	}

	t := task{delivery: delivery}
	if tid, ok := tenant.FromContext(ctx); ok {
		t.tenantID = tid
		t.hasTenant = true
	} else if delivery.TenantID() != 0 {
		t.tenantID = delivery.TenantID()
		t.hasTenant = true
	}

	d.tasks <- t
	return nil
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for t := range d.tasks {
		// A fresh context per task: the captured scope is installed for
		// exactly this task's duration and discarded with the context.
		ctx := context.Background()
		if t.hasTenant {
			ctx = tenant.WithTenant(ctx, t.tenantID)
		}
		d.dispatchSafely(ctx, t.delivery, id)
	}
}

func (d *Dispatcher) dispatchSafely(ctx context.Context, delivery *notification.Delivery, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorw("dispatch panicked",
				"worker", workerID,
				"delivery_id", delivery.ID(),
				"panic", fmt.Sprintf("%v", r),
			)
		}
	}()
	d.Dispatch(ctx, delivery)
}

// Dispatch runs one attempt of the delivery status machine:
//
//   - in-app records are marked delivered immediately, no sender involved;
//   - a channel without a registered sender fails terminally (configuration,
//     not transient);
//   - otherwise the record moves to sending and the sender runs; success
//     marks it sent, a configuration failure marks it failed, and any other
//     failure books a retry (back to pending until max retries, then failed).
//
// All failures are absorbed here; callers of the send API never see them.
func (d *Dispatcher) Dispatch(ctx context.Context, delivery *notification.Delivery) {
	log := d.logger.With(
		"delivery_id", delivery.ID(),
		"channel", delivery.Channel().String(),
		"recipient_id", delivery.RecipientID(),
	)

	if delivery.Channel() == vo.ChannelInApp {
		if err := delivery.MarkDelivered(); err != nil {
			log.Warnw("skipping in-app record in unexpected status", "status", delivery.Status().String())
			return
		}
		if err := d.deliveries.Update(ctx, delivery); err != nil {
			log.Errorw("failed to persist delivered status", "error", err)
		}
		return
	}

	sender, ok := d.senders.Lookup(delivery.Channel())
	if !ok {
		reason := fmt.Sprintf("no sender registered for channel %s", delivery.Channel())
		if err := delivery.MarkFailed(reason); err != nil {
			log.Warnw("skipping record in unexpected status", "status", delivery.Status().String())
			return
		}
		if err := d.deliveries.Update(ctx, delivery); err != nil {
			log.Errorw("failed to persist failed status", "error", err)
		}
		log.Errorw("delivery failed permanently", "reason", reason)
		return
	}

	if err := delivery.BeginSending(); err != nil {
		// Another task already claimed this record.
		log.Warnw("record not in pending status, skipping", "status", delivery.Status().String())
		return
	}
	if err := d.deliveries.Update(ctx, delivery); err != nil {
		log.Errorw("failed to persist sending status", "error", err)
		return
	}

	sendErr := sender.Send(ctx, delivery)
	if sendErr == nil {
		if err := delivery.MarkSent(); err != nil {
			log.Errorw("failed to mark record sent", "error", err)
			return
		}
		if err := d.deliveries.Update(ctx, delivery); err != nil {
			log.Errorw("failed to persist sent status", "error", err)
		}
		log.Debugw("delivery sent")
		return
	}

	d.handleSendFailure(ctx, delivery, sendErr, log)
}

func (d *Dispatcher) handleSendFailure(ctx context.Context, delivery *notification.Delivery, sendErr error, log logger.Interface) {
	if KindOf(sendErr) == ErrorKindConfiguration {
		if err := delivery.MarkFailed(sendErr.Error()); err != nil {
			log.Errorw("failed to mark record failed", "error", err)
			return
		}
		if err := d.deliveries.Update(ctx, delivery); err != nil {
			log.Errorw("failed to persist failed status", "error", err)
		}
		log.Errorw("delivery failed permanently", "reason", sendErr.Error())
		return
	}

	if err := delivery.RecordFailure(sendErr.Error(), d.cfg.MaxRetries); err != nil {
		log.Errorw("failed to record delivery failure", "error", err)
		return
	}
	if err := d.deliveries.Update(ctx, delivery); err != nil {
		log.Errorw("failed to persist retry bookkeeping", "error", err)
	}

	if delivery.Status() == vo.DeliveryStatusFailed {
		log.Errorw("delivery failed after exhausting retries",
			"retry_count", delivery.RetryCount(),
			"reason", sendErr.Error(),
		)
	} else {
		log.Warnw("delivery attempt failed, will retry",
			"retry_count", delivery.RetryCount(),
			"reason", sendErr.Error(),
		)
	}
}

// SweepOnce re-dispatches every pending record that still has retries left.
// Each record runs under its own tenant's scope. Returns the number of
// records attempted.
func (d *Dispatcher) SweepOnce(ctx context.Context) (int, error) {
	retryable, err := d.deliveries.FindRetryable(ctx, d.cfg.MaxRetries, d.cfg.SweepBatch)
	if err != nil {
		return 0, fmt.Errorf("failed to query retryable deliveries: %w", err)
	}

	for _, delivery := range retryable {
		recordCtx := ctx
		if delivery.TenantID() != 0 {
			recordCtx = tenant.WithTenant(ctx, delivery.TenantID())
		}
		d.Dispatch(recordCtx, delivery)
	}

	return len(retryable), nil
}

// MaxRetries exposes the configured retry bound.
func (d *Dispatcher) MaxRetries() int {
	return d.cfg.MaxRetries
}

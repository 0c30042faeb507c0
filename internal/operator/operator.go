package operator

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/metrics"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(s *storage.Storage, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		metrics.OperatorQueueDepth.Dec()
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	name := item.action.Name()
	timer := prometheus.NewTimer(metrics.ActionDuration.WithLabelValues(name))
	err := o.perform(item.ctx, item.action)
	timer.ObserveDuration()

	if err != nil {
		metrics.ActionsProcessed.WithLabelValues(name, "error").Inc()
		o.logger.WithError(err).WithField("action", name).Warn("Operator.processItem.Error")
	} else {
		metrics.ActionsProcessed.WithLabelValues(name, "committed").Inc()
	}

	item.response <- ActionItemResponse{err: err}
}

func (o *Operator) perform(ctx context.Context, action actions.IAction) error {
	// The caller may have given up while the item sat in the queue.
	if err := ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(ctx)
	if err != nil {
		return err
	}

	err = action.Perform(ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			o.logger.WithError(rbErr).WithField("action", action.Name()).Error("Operator.perform.Rollback")
		}
		return err
	}

	if err = writer.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", action.Name(), err)
	}

	return nil
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}

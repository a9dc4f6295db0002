package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

type transitionGateway interface {
	SubmitArticle(ctx context.Context, sess gateway.Session, id string) error
	ApproveArticle(ctx context.Context, sess gateway.Session, id string) error
	RejectArticle(ctx context.Context, sess gateway.Session, id string) error
	ApproveEvent(ctx context.Context, sess gateway.Session, id string) error
	RejectEvent(ctx context.Context, sess gateway.Session, id string) error
	CancelEvent(ctx context.Context, sess gateway.Session, id string) error
}

// TransitionExecutor performs exactly one named transition for exactly one
// content item: one gateway mutation call per Execute, no retry, no batching.
// Policy (which transitions are legal for whom) belongs to the workflow
// machine and is checked by callers before Execute; the executor is pure
// mechanism. On failure the local view is left untouched; on success the
// caller refreshes either the single item or its list, never both.
type TransitionExecutor struct {
	gw      transitionGateway
	metrics *MetricsService
	logger  *zap.Logger
}

// NewTransitionExecutor constructs the executor. metrics may be nil.
func NewTransitionExecutor(gw transitionGateway, metrics *MetricsService, logger *zap.Logger) *TransitionExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransitionExecutor{gw: gw, metrics: metrics, logger: logger}
}

// Execute dispatches the transition to the gateway call that implements it.
func (e *TransitionExecutor) Execute(ctx context.Context, sess gateway.Session, kind models.ContentKind, id string, t models.Transition) error {
	var err error
	switch {
	case kind == models.KindArticle && t == models.TransitionSubmit:
		err = e.gw.SubmitArticle(ctx, sess, id)
	case kind == models.KindArticle && t == models.TransitionApprove:
		err = e.gw.ApproveArticle(ctx, sess, id)
	case kind == models.KindArticle && t == models.TransitionReject:
		err = e.gw.RejectArticle(ctx, sess, id)
	case kind == models.KindEvent && t == models.TransitionApprove:
		err = e.gw.ApproveEvent(ctx, sess, id)
	case kind == models.KindEvent && t == models.TransitionReject:
		err = e.gw.RejectEvent(ctx, sess, id)
	case kind == models.KindEvent && t == models.TransitionCancel:
		err = e.gw.CancelEvent(ctx, sess, id)
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unsupported transition for content kind")
	}

	e.metrics.ObserveTransition(kind, t, err == nil)

	if err != nil {
		e.logger.Warn("transition failed",
			zap.String("kind", string(kind)),
			zap.String("id", id),
			zap.String("transition", string(t)),
			zap.String("error_kind", string(appErrors.KindOf(err))),
			zap.Error(err),
		)
		return err
	}

	e.logger.Info("transition applied",
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.String("transition", string(t)),
	)
	return nil
}

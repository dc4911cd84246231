package notify

import (
	"context"
	"fmt"

	"github.com/foracure/backend/internal/telemetry/metrics"
	"github.com/foracure/backend/internal/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=dispatcher_mocks_test.go -package=notify_test

// Sender delivers a single email and returns the provider's message id
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}

type Dispatcher struct {
	sender         Sender
	from           string
	inbox          string
	metricsManager *metrics.Manager
}

func NewDispatcher(sender Sender, from, inbox string, metricsManager *metrics.Manager) *Dispatcher {
	return &Dispatcher{
		sender:         sender,
		from:           from,
		inbox:          inbox,
		metricsManager: metricsManager,
	}
}

func (d *Dispatcher) SendContact(ctx context.Context, msg ContactMessage) (string, error) {
	if msg.Email == "" || msg.Message == "" {
		return "", ErrMissingFields
	}
	subject, text := contactEmail(msg)
	return d.send(ctx, "contact", msg.Email, subject, text)
}

func (d *Dispatcher) SendSubscription(ctx context.Context, req SubscriptionRequest) (string, error) {
	if req.Email == "" {
		return "", ErrMissingFields
	}
	subject, text := subscriptionEmail(req)
	return d.send(ctx, "subscribe", req.Email, subject, text)
}

func (d *Dispatcher) SendTeamUp(ctx context.Context, req TeamUpRequest) (string, error) {
	if req.Email == "" || req.Message == "" {
		return "", ErrMissingFields
	}
	subject, text := teamUpEmail(req)
	return d.send(ctx, "team-up", req.Email, subject, text)
}

func (d *Dispatcher) send(ctx context.Context, kind, replyTo, subject, text string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dispatcher.send")
	span.SetAttributes(attribute.String("kind", kind))
	defer func() {
		status := "sent"
		if err != nil {
			status = "failed"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		if d.metricsManager != nil {
			d.metricsManager.CounterEmails.With(prometheus.Labels{
				"kind":   kind,
				"status": status,
			}).Inc()
		}
		span.End()
	}()

	id, err := d.sender.Send(ctx, Email{
		From:    d.from,
		To:      d.inbox,
		ReplyTo: replyTo,
		Subject: subject,
		Text:    text,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrDelivery, kind, err)
	}

	log.Tracef("%s email sent, id: %s", kind, id)
	return id, nil
}

package notifications

import (
	"context"

	"github.com/gimlet-io/rocketchat-notifier/pkg/model"
	"github.com/sirupsen/logrus"
)

type Settings struct {
	WebhookURL             string
	Channel                string
	NotifyBackToNormalOnly bool
	ShowTestSummary        bool
}

type Result struct {
	Decision Decision
	Payload  *Payload
	Status   string
	Err      error
}

// BuildResult is the outcome the CI host should record for the notification step
func (r Result) BuildResult() model.Outcome {
	if r.Status == model.StatusFailed {
		return model.Failure
	}
	return model.Success
}

type Publisher struct {
	notifier Notifier
}

func NewPublisher(notifier Notifier) *Publisher {
	return &Publisher{notifier: notifier}
}

// Publish decides, renders and delivers the notification of one build.
// Delivery errors are logged and reported in the result, never returned.
func (p *Publisher) Publish(ctx context.Context, record model.Record, settings Settings) Result {
	log := logrus.WithFields(logrus.Fields{
		"project": record.ProjectName,
		"build":   record.BuildNumber,
		"result":  record.Outcome.String(),
	})
	log.Info("Notifying Rocket.Chat")

	decision := Evaluate(record.Outcome, record.PreviousOutcome, settings.NotifyBackToNormalOnly)
	result := Result{Decision: decision, Status: model.StatusSkipped}
	if !decision.ShouldNotify {
		log.Debugf("build is still successful, not notifying")
		return result
	}

	payload := BuildPayload(record, decision, settings.Channel, settings.ShowTestSummary)
	if payload.Text == "" {
		log.Warnf("build result is not conclusive, not notifying")
		return result
	}
	result.Payload = payload

	err := p.notifier.Post(ctx, payload, settings.WebhookURL)
	if err != nil {
		log.Warnf("Failed to notify Rocket.Chat: %s", err)
		result.Status = model.StatusFailed
		result.Err = err
		return result
	}

	log.Debugf("notified Rocket.Chat: %s", decision.Transition)
	result.Status = model.StatusDelivered
	return result
}

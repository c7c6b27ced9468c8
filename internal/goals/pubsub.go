package goals

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// PubSub carries goal events over redis channels: milestone notifications for
// the notifier service, goal change events for other backend instances, and
// completed session events coming in from the sessions service.
type PubSub struct {
	rdb                  *redis.Client
	notificationsChannel string
	changesChannelBase   string
	sessionsChannel      string
}

type NewPubSubParams struct {
	Client               *redis.Client
	NotificationsChannel string
	GoalChangesChannel   string
	SessionEventsChannel string
}

func NewPubSub(params NewPubSubParams) *PubSub {
	return &PubSub{
		rdb:                  params.Client,
		notificationsChannel: params.NotificationsChannel,
		changesChannelBase:   params.GoalChangesChannel,
		sessionsChannel:      params.SessionEventsChannel,
	}
}

func (ps *PubSub) NotifyMilestone(ctx context.Context, notification MilestoneNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal milestone notification: %w", err)
	}
	if err := ps.rdb.Publish(ctx, ps.notificationsChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish milestone notification: %w", err)
	}
	return nil
}

func (ps *PubSub) PublishChange(ctx context.Context, ownerID string) error {
	channel := ps.changesChannel(ownerID)
	if err := ps.rdb.Publish(ctx, channel, ownerID).Err(); err != nil {
		return fmt.Errorf("publish goal change: %w", err)
	}
	return nil
}

// SubscribeGoalChanges listens for goal change events published by any
// backend instance and hands the owner id to handle. Blocks until ctx is done.
func (ps *PubSub) SubscribeGoalChanges(ctx context.Context, handle func(ctx context.Context, ownerID string)) {
	pattern := ps.changesChannel("*")
	pubsub := ps.rdb.PSubscribe(ctx, pattern)
	defer func() {
		if err := pubsub.Close(); err != nil {
			log.Errorf("close goal changes subscription: %s", err)
		}
	}()

	log.Debugf("subscribed to goal changes: %s", pattern)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			handle(ctx, msg.Payload)
		}
	}
}

// SubscribeSessionEvents listens for completed training sessions and hands
// each event to handle. Blocks until ctx is done. Malformed events are logged
// and skipped.
func (ps *PubSub) SubscribeSessionEvents(ctx context.Context, handle func(ctx context.Context, event sessions.CompletedEvent)) {
	pubsub := ps.rdb.Subscribe(ctx, ps.sessionsChannel)
	defer func() {
		if err := pubsub.Close(); err != nil {
			log.Errorf("close session events subscription: %s", err)
		}
	}()

	log.Debugf("subscribed to session events: %s", ps.sessionsChannel)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			var event sessions.CompletedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Errorf("session event unmarshal failed, skipping: %s", err)
				continue
			}
			handle(ctx, event)
		}
	}
}

func (ps *PubSub) changesChannel(ownerID string) string {
	return fmt.Sprintf("%s:%s", ps.changesChannelBase, ownerID)
}

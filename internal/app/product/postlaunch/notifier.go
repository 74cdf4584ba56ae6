package postlaunch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/product-launch-service/internal/app/product/usecases/launch_product"
)

// DefaultChannel is the Redis channel launch notifications are published on.
const DefaultChannel = "product-launches"

// Notification is the message sent to subscribers once a launch committed.
type Notification struct {
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	CampaignIDs []int     `json:"campaign_ids"`
	LaunchDate  time.Time `json:"launch_date"`
	LaunchedBy  string    `json:"launched_by"`
}

func NewNotification(l launch_product.Launched) Notification {
	ids := make([]int, 0, len(l.Campaigns))
	for _, c := range l.Campaigns {
		ids = append(ids, c.ID)
	}
	return Notification{
		ProductID:   l.Product.ProductID,
		ProductName: l.Product.Name,
		Category:    l.Product.Category,
		Price:       l.Product.Price,
		CampaignIDs: ids,
		LaunchDate:  l.LaunchDate,
		LaunchedBy:  l.LaunchedBy.Email,
	}
}

// Publisher is the subset of the Redis client used by RedisNotifier.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier publishes launch notifications on a Redis channel.
type RedisNotifier struct {
	Client  Publisher
	Channel string
	Logger  logrus.FieldLogger
}

func NewRedisNotifier(client Publisher, channel string, logger logrus.FieldLogger) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{Client: client, Channel: channel, Logger: logger}
}

func (n *RedisNotifier) Name() string { return "notify" }

func (n *RedisNotifier) Run(ctx context.Context, launched launch_product.Launched) error {
	payload, err := json.Marshal(NewNotification(launched))
	if err != nil {
		return errors.Wrap(err, "marshal notification")
	}
	receivers, err := n.Client.Publish(ctx, n.Channel, payload).Result()
	if err != nil {
		return errors.Wrapf(err, "publish to %s", n.Channel)
	}
	n.Logger.WithFields(logrus.Fields{
		"product_id": launched.Product.ProductID,
		"channel":    n.Channel,
		"receivers":  receivers,
	}).Debug("launch notification published")
	return nil
}

// LogNotifier writes launch notifications to the log. Used when Redis is not configured.
type LogNotifier struct {
	Logger logrus.FieldLogger
}

func (n LogNotifier) Name() string { return "notify" }

func (n LogNotifier) Run(_ context.Context, launched launch_product.Launched) error {
	note := NewNotification(launched)
	n.Logger.WithFields(logrus.Fields{
		"product_id":   note.ProductID,
		"product_name": note.ProductName,
		"campaign_ids": note.CampaignIDs,
		"launched_by":  note.LaunchedBy,
	}).Info("product launch notification")
	return nil
}

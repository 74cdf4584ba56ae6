package postlaunch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-launch-service/internal/app/product/dto"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/launch_product"
)

type fakePublisher struct {
	channel string
	message []byte
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message, _ = message.([]byte)
	return redis.NewIntResult(1, f.err)
}

func sampleLaunch() launch_product.Launched {
	return launch_product.Launched{
		Product: dto.ProductDTO{ProductID: 3, Name: "Aurora Lamp", Category: "lighting", Price: "45.00"},
		Campaigns: []launch_product.CampaignResult{
			{ID: 1, Name: "Spring"},
			{ID: 2, Name: "Summer"},
		},
		LaunchDate: now,
		LaunchedBy: dto.UserSummary{ID: 1, Email: "ada@example.com"},
	}
}

func TestRedisNotifier_PublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	logger, _ := logtest.NewNullLogger()

	n := NewRedisNotifier(pub, "", logger)
	require.NoError(t, n.Run(context.Background(), sampleLaunch()))

	assert.Equal(t, DefaultChannel, pub.channel)

	var got Notification
	require.NoError(t, json.Unmarshal(pub.message, &got))
	assert.Equal(t, int64(3), got.ProductID)
	assert.Equal(t, []int{1, 2}, got.CampaignIDs)
	assert.Equal(t, "ada@example.com", got.LaunchedBy)
	assert.True(t, now.Equal(got.LaunchDate))
}

func TestRedisNotifier_ReturnsPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection refused")}
	logger, _ := logtest.NewNullLogger()

	err := NewRedisNotifier(pub, "launches", logger).Run(context.Background(), sampleLaunch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish to launches")
}

func TestLogNotifier(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	require.NoError(t, LogNotifier{Logger: logger}.Run(context.Background(), sampleLaunch()))

	e := hook.LastEntry()
	require.NotNil(t, e)
	assert.Equal(t, logrus.InfoLevel, e.Level)
	assert.Equal(t, int64(3), e.Data["product_id"])
}

// TestRedisNotifier_Integration requires a running Redis and skips otherwise.
func TestRedisNotifier_Integration(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Skipping Redis integration test: redis not available")
	}

	sub := client.Subscribe(ctx, "product-launches-test")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	logger, _ := logtest.NewNullLogger()
	require.NoError(t, NewRedisNotifier(client, "product-launches-test", logger).Run(ctx, sampleLaunch()))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var got Notification
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, "Aurora Lamp", got.ProductName)
}

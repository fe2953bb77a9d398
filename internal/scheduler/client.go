package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"

	"hvac_crm_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues delayed tasks. A nil client is safe to call and does
// nothing, so reminder scheduling degrades gracefully when Redis is not
// configured.
type Client struct {
	client *asynq.Client
	queue  string
	cfg    config.SchedulerConfig
}

// NewClient creates an asynq client from the scheduler configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
		cfg:    cfg,
	}, nil
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleFollowUpReminder enqueues a reminder that fires after the
// configured follow-up delay.
func (c *Client) ScheduleFollowUpReminder(ctx context.Context, organizationID, leadID uuid.UUID, leadName string) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewLeadFollowUpReminderTask(LeadFollowUpReminderPayload{
		LeadID:         leadID.String(),
		OrganizationID: organizationID.String(),
		LeadName:       leadName,
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(c.cfg.GetFollowUpReminderDelay()),
		asynq.Queue(c.queue),
	)
	return err
}

// PingRedis verifies the Redis connection used by the scheduler. Called at
// worker startup so misconfiguration surfaces immediately.
func PingRedis(ctx context.Context, cfg config.SchedulerConfig) error {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.GetRedisTLSInsecure() && opt.TLSConfig != nil {
		opt.TLSConfig.InsecureSkipVerify = true
	}

	client := redis.NewClient(opt)
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}

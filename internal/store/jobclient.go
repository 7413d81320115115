package store

import (
	"context"
	"encoding/json"
	"fmt"

	"giftwise/internal/models"
	"giftwise/internal/tasks"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// AsynqJobClient is the concrete JobClient backed by asynq/Redis.
var _ JobClient = (*AsynqJobClient)(nil)

type AsynqJobClient struct {
	client *asynq.Client
}

func NewAsynqJobClient(redisAddr, password string, db int) (*AsynqJobClient, error) {
	if redisAddr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	cli := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})
	return &AsynqJobClient{client: cli}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

func (jc *AsynqJobClient) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if jc.client == nil {
		return nil, fmt.Errorf("asynq client is not initialized")
	}
	info, err := jc.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return nil, fmt.Errorf("enqueue task %s: %w", task.Type(), err)
	}
	log.Debugf("Enqueued task: id=%s type=%s queue=%s", info.ID, info.Type, info.Queue)
	return info, nil
}

// EnqueueInteractionEvent queues an interaction event for asynchronous
// persistence by the worker.
func (jc *AsynqJobClient) EnqueueInteractionEvent(ctx context.Context, event *models.InteractionEvent) error {
	payload, err := json.Marshal(tasks.InteractionRecordPayload{
		EventID:    event.ID,
		UserID:     event.UserID,
		ItemID:     event.ItemID,
		Kind:       string(event.Kind),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal interaction event payload: %w", err)
	}
	task := asynq.NewTask(tasks.TypeInteractionRecord, payload)
	_, err = jc.Enqueue(ctx, task, asynq.MaxRetry(3), asynq.Queue("events"))
	return err
}

package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	runKeyPrefix = "job_runs:"
	runRecordTTL = 7 * 24 * time.Hour
)

const (
	RunStatusRunning   = "Running"
	RunStatusSucceeded = "Succeeded"
	RunStatusFailed    = "Failed"
	RunStatusScheduled = "Scheduled"
)

type RunRecord struct {
	ID         string     `json:"id"`
	Job        string     `json:"job"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// RunStore 手动触发的任务在 Redis 里留一条运行记录，供排查。
type RunStore struct {
	rdb *redis.Client
}

func NewRunStore(addr, password string, db int) *RunStore {
	return &RunStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
	}
}

func (s *RunStore) Save(ctx context.Context, rec RunRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, runKeyPrefix+rec.ID, b, runRecordTTL).Err()
}

func (s *RunStore) Get(ctx context.Context, id string) (*RunRecord, error) {
	b, err := s.rdb.Get(ctx, runKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec RunRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RunStore) Close() error { return s.rdb.Close() }

package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/consts"
	"ThreadFarm/internal/pkg/redis"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// 向导会话在无操作 24 小时后过期
const wizardSessionTTL = 24 * time.Hour

// WizardStore 向导会话状态的读写接口，按用户一人一份
type WizardStore interface {
	Load(ctx context.Context, userID uint64) (*dto.WizardState, error)
	Save(ctx context.Context, userID uint64, state *dto.WizardState) error
	Delete(ctx context.Context, userID uint64) error
}

type RedisWizardStore struct{}

func NewRedisWizardStore() WizardStore {
	return &RedisWizardStore{}
}

func wizardKey(userID uint64) string {
	return fmt.Sprintf("%s%d", consts.WizardSessionKey, userID)
}

// Load 会话不存在时返回 (nil, nil)
func (s *RedisWizardStore) Load(ctx context.Context, userID uint64) (*dto.WizardState, error) {
	raw, err := redis.GetValue(ctx, wizardKey(userID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	state := &dto.WizardState{}
	if err = json.Unmarshal([]byte(raw), state); err != nil {
		return nil, err
	}
	return state, nil
}

// Save 整体覆写，后写者赢，并顺带续期
func (s *RedisWizardStore) Save(ctx context.Context, userID uint64, state *dto.WizardState) error {
	state.UpdatedAt = time.Now().Format(time.RFC3339)
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, wizardKey(userID), string(raw), wizardSessionTTL)
}

func (s *RedisWizardStore) Delete(ctx context.Context, userID uint64) error {
	return redis.DeleteKey(ctx, wizardKey(userID))
}

// WizardLock 发布在途互斥，同一用户同一时刻只允许一个发布
type WizardLock interface {
	Acquire(ctx context.Context, userID uint64, ttl time.Duration) (bool, error)
	Release(ctx context.Context, userID uint64) error
}

type RedisWizardLock struct{}

func NewRedisWizardLock() WizardLock {
	return &RedisWizardLock{}
}

func publishLockKey(userID uint64) string {
	return fmt.Sprintf("%s%d", consts.WizardPublishLock, userID)
}

func (s *RedisWizardLock) Acquire(ctx context.Context, userID uint64, ttl time.Duration) (bool, error) {
	return redis.GetRdbClient().SetNX(ctx, publishLockKey(userID), "1", ttl).Result()
}

func (s *RedisWizardLock) Release(ctx context.Context, userID uint64) error {
	return redis.DeleteKey(ctx, publishLockKey(userID))
}

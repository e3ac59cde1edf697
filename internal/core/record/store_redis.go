// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vodstrm/internal/platform/apperr"
	"github.com/taibuivan/vodstrm/internal/platform/constants"
	"github.com/taibuivan/vodstrm/internal/platform/dberr"
	redisclient "github.com/taibuivan/vodstrm/internal/platform/redis"
)

// RedisRepository stores each record as a JSON string and keeps a sorted
// set of ids scored by creation time.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository wraps a connected client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func recordKey(id string) string {
	return constants.RedisPrefixRecord + id
}

func (repository *RedisRepository) Create(context context.Context, record *Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return apperr.Internal(err)
	}

	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Set(context, recordKey(record.ID), payload, 0)
		pipe.ZAdd(context, constants.RedisKeyRecordIdx, redis.Z{
			Score:  float64(record.CreatedAt.UnixMilli()),
			Member: record.ID,
		})
		return nil
	})
	return dberr.Wrap(err, resourceName, "create_record")
}

func (repository *RedisRepository) List(context context.Context) ([]*Record, error) {
	ids, err := repository.client.ZRevRange(context, constants.RedisKeyRecordIdx, 0, -1).Result()
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_records")
	}

	records := make([]*Record, 0, len(ids))
	if len(ids) == 0 {
		return records, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}

	values, err := repository.client.MGet(context, keys...).Result()
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_records")
	}

	for _, value := range values {
		payload, ok := value.(string)
		if !ok {
			// index entry whose document was removed out of band
			continue
		}
		record := &Record{}
		if err := json.Unmarshal([]byte(payload), record); err != nil {
			return nil, apperr.Internal(fmt.Errorf("decode record: %w", err))
		}
		records = append(records, record)
	}

	return records, nil
}

func (repository *RedisRepository) Get(context context.Context, id string) (*Record, error) {
	payload, err := repository.client.Get(context, recordKey(id)).Bytes()
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "get_record")
	}

	record := &Record{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, apperr.Internal(fmt.Errorf("decode record: %w", err))
	}
	return record, nil
}

func (repository *RedisRepository) Replace(context context.Context, record *Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return apperr.Internal(err)
	}

	// XX: only overwrite an existing document
	err = repository.client.SetArgs(context, recordKey(record.ID), payload, redis.SetArgs{Mode: "XX"}).Err()
	if errors.Is(err, redis.Nil) {
		return apperr.NotFound(resourceName)
	}
	return dberr.Wrap(err, resourceName, "replace_record")
}

func (repository *RedisRepository) Delete(context context.Context, id string) error {
	var deleted *redis.IntCmd

	_, err := repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(context, recordKey(id))
		pipe.ZRem(context, constants.RedisKeyRecordIdx, id)
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, resourceName, "delete_record")
	}
	if deleted.Val() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

func (repository *RedisRepository) Ping(context context.Context) error {
	return redisclient.Ping(context, repository.client)
}

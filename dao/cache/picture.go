package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"math/rand"
	"time"

	"PicCloud/types"

	"github.com/redis/go-redis/v9"
)

const pictureListKeyPrefix = "piccloud:listpage:"

// PictureListStorage 图片分页列表缓存
// key 按查询条件哈希，写操作不做失效，靠短 TTL 过期
type PictureListStorage struct {
	redis *redis.Client
}

func NewPictureListStorage(redis *redis.Client) *PictureListStorage {
	return &PictureListStorage{redis: redis}
}

func (s *PictureListStorage) key(req *types.PictureQueryRequest) string {
	raw, _ := json.Marshal(req)
	sum := md5.Sum(raw)
	return pictureListKeyPrefix + hex.EncodeToString(sum[:])
}

// Get 命中返回缓存页，未命中返回 nil
func (s *PictureListStorage) Get(ctx context.Context, req *types.PictureQueryRequest) (*types.PictureVOPage, error) {
	raw, err := s.redis.Get(ctx, s.key(req)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var page types.PictureVOPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Set 写入缓存页，TTL 加随机抖动避免同时过期
func (s *PictureListStorage) Set(ctx context.Context, req *types.PictureQueryRequest, page *types.PictureVOPage) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	ttl := 5*time.Minute + time.Duration(rand.Intn(60))*time.Second
	return s.redis.Set(ctx, s.key(req), raw, ttl).Err()
}

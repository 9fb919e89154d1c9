package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-agent-go/internal/config"
	"resume-agent-go/internal/constants"
	"resume-agent-go/internal/logger"
	"resume-agent-go/internal/types"
)

// ErrNotFound Redis键不存在时返回的哨兵错误，封装底层的redis.Nil
var ErrNotFound = redis.Nil

// Redis 键值存储封装
// 承担两个职责：MD5去重集合（原始文件和解析文本两级）和候选人记录的读缓存
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis连接并验证连通性
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("Redis地址不能为空")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis连接检查失败: %w", err)
	}

	logger.Info().Str("address", cfg.Address).Int("db", cfg.DB).Msg("Redis连接建立")
	return &Redis{Client: client, config: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	return r.Client.Close()
}

// Ping 检查连接可用性
func (r *Redis) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// GetMD5ExpireDuration 返回MD5去重记录的过期时间
func (r *Redis) GetMD5ExpireDuration() time.Duration {
	if r.config.MD5RecordExpireDays > 0 {
		return time.Duration(r.config.MD5RecordExpireDays) * 24 * time.Hour
	}
	return constants.RawFileMD5ExpireDuration
}

// checkAndAddMD5 原子"检查并加入"去重集合
// 用LUA脚本保证SISMEMBER+SADD+EXPIRE在并发上传下不产生竞态
func (r *Redis) checkAndAddMD5(ctx context.Context, setKey string, md5Hex string) (bool, error) {
	if r.Client == nil {
		return false, fmt.Errorf("Redis客户端未初始化")
	}

	script := `
		local exists = redis.call('SISMEMBER', KEYS[1], ARGV[1])
		redis.call('SADD', KEYS[1], ARGV[1])
		redis.call('EXPIRE', KEYS[1], ARGV[2])
		return exists
	`
	expiry := r.GetMD5ExpireDuration().Seconds()

	res, err := r.Client.Eval(ctx, script, []string{setKey}, md5Hex, expiry).Result()
	if err != nil {
		return false, fmt.Errorf("执行原子检查和添加操作失败: %w", err)
	}
	existsVal, ok := res.(int64)
	if !ok {
		return false, fmt.Errorf("意外的Redis返回类型: %T", res)
	}
	return existsVal == 1, nil
}

// CheckAndAddRawFileMD5 上传级去重：返回该原始文件MD5是否已存在
func (r *Redis) CheckAndAddRawFileMD5(ctx context.Context, md5Hex string) (bool, error) {
	return r.checkAndAddMD5(ctx, constants.KeyRawFileMD5Set, md5Hex)
}

// CheckAndAddParsedTextMD5 内容级去重：返回该解析文本MD5是否已存在
// 不同文件名、相同内容的简历在这一级被拦下
func (r *Redis) CheckAndAddParsedTextMD5(ctx context.Context, md5Hex string) (bool, error) {
	return r.checkAndAddMD5(ctx, constants.KeyParsedTextMD5Set, md5Hex)
}

// RemoveRawFileMD5 从去重集合移除原始文件MD5
// 删除提交记录后调用，允许同一份文件重新上传
func (r *Redis) RemoveRawFileMD5(ctx context.Context, md5Hex string) error {
	return r.Client.SRem(ctx, constants.KeyRawFileMD5Set, md5Hex).Err()
}

// CacheCandidateRecord 以JSON缓存解析出的候选人记录
func (r *Redis) CacheCandidateRecord(ctx context.Context, submissionUUID string, record *types.CandidateRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("序列化候选人记录失败: %w", err)
	}
	key := fmt.Sprintf(constants.KeyCandidateRecord, submissionUUID)
	return r.Client.Set(ctx, key, data, ttl).Err()
}

// GetCachedCandidateRecord 读取缓存的候选人记录
// 缓存未命中返回ErrNotFound，调用方回源MySQL
func (r *Redis) GetCachedCandidateRecord(ctx context.Context, submissionUUID string) (*types.CandidateRecord, error) {
	key := fmt.Sprintf(constants.KeyCandidateRecord, submissionUUID)
	data, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var record types.CandidateRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("反序列化候选人记录失败: %w", err)
	}
	return &record, nil
}

// DeleteCachedCandidateRecord 删除候选人记录缓存
func (r *Redis) DeleteCachedCandidateRecord(ctx context.Context, submissionUUID string) error {
	key := fmt.Sprintf(constants.KeyCandidateRecord, submissionUUID)
	return r.Client.Del(ctx, key).Err()
}

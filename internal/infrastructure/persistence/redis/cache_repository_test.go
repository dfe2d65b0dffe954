package redis

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/alchemorsel/nutriplan/internal/infrastructure/config"
	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// CacheRepositoryTestSuite runs the Redis cache against an in-process server
type CacheRepositoryTestSuite struct {
	suite.Suite
	server *miniredis.Miniredis
	client goredis.UniversalClient
	logs   *observer.ObservedLogs
	repo   *CacheRepository
	ctx    context.Context
}

func (s *CacheRepositoryTestSuite) SetupTest() {
	s.server = miniredis.RunT(s.T())
	s.client = goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs:      []string{s.server.Addr()},
		MaxRetries: -1,
	})
	s.T().Cleanup(func() { _ = s.client.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	s.logs = logs
	s.repo = NewCacheRepository(s.client, zap.New(core))
	s.ctx = context.Background()
}

func (s *CacheRepositoryTestSuite) TestGet_MissingKey() {
	_, err := s.repo.Get(s.ctx, "nutrition:report:absent:balanced")

	s.ErrorIs(err, outbound.ErrCacheMiss)
}

func (s *CacheRepositoryTestSuite) TestSetGetDelete() {
	key := "nutrition:report:abc:balanced"

	s.Require().NoError(s.repo.Set(s.ctx, key, []byte(`{"daily_calories":2259}`), time.Minute))

	got, err := s.repo.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(`{"daily_calories":2259}`, string(got))

	s.Require().NoError(s.repo.Delete(s.ctx, key))
	_, err = s.repo.Get(s.ctx, key)
	s.ErrorIs(err, outbound.ErrCacheMiss)
}

func (s *CacheRepositoryTestSuite) TestSet_AppliesTTL() {
	key := "nutrition:report:abc:front_loaded"

	s.Require().NoError(s.repo.Set(s.ctx, key, []byte("report"), 15*time.Minute))
	s.Equal(15*time.Minute, s.server.TTL(key))

	s.server.FastForward(14 * time.Minute)
	_, err := s.repo.Get(s.ctx, key)
	s.NoError(err)

	s.server.FastForward(2 * time.Minute)
	_, err = s.repo.Get(s.ctx, key)
	s.ErrorIs(err, outbound.ErrCacheMiss)
}

func (s *CacheRepositoryTestSuite) TestSet_ZeroTTLNeverExpires() {
	key := "nutrition:report:abc:back_loaded"

	s.Require().NoError(s.repo.Set(s.ctx, key, []byte("report"), 0))

	s.Equal(time.Duration(0), s.server.TTL(key))
	s.server.FastForward(24 * time.Hour)
	_, err := s.repo.Get(s.ctx, key)
	s.NoError(err)
}

func (s *CacheRepositoryTestSuite) TestDeleteByPrefix_SpansSeveralBatches() {
	prefix := "nutrition:report:abc:"
	for i := 0; i < 2*scanBatch+7; i++ {
		s.Require().NoError(s.server.Set(fmt.Sprintf("%scustom-%d", prefix, i), "r"))
	}
	s.Require().NoError(s.server.Set("nutrition:report:abcd:balanced", "keep"))
	s.Require().NoError(s.server.Set("nutrition:report:other:balanced", "keep"))

	s.Require().NoError(s.repo.DeleteByPrefix(s.ctx, prefix))

	s.Equal([]string{"nutrition:report:abcd:balanced", "nutrition:report:other:balanced"}, s.server.Keys())
}

func (s *CacheRepositoryTestSuite) TestDeleteByPrefix_NoMatches() {
	s.Require().NoError(s.server.Set("nutrition:report:other:balanced", "keep"))

	s.NoError(s.repo.DeleteByPrefix(s.ctx, "nutrition:report:abc:"))
	s.Len(s.server.Keys(), 1)
}

func (s *CacheRepositoryTestSuite) TestPing() {
	s.NoError(s.repo.Ping(s.ctx))

	s.server.Close()

	err := s.repo.Ping(s.ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), "redis ping")
}

func (s *CacheRepositoryTestSuite) TestServerErrorsAreNotMisses() {
	s.server.Close()

	_, err := s.repo.Get(s.ctx, "nutrition:report:abc:balanced")
	s.Require().Error(err)
	s.NotErrorIs(err, outbound.ErrCacheMiss)

	s.Error(s.repo.Set(s.ctx, "nutrition:report:abc:balanced", []byte("r"), time.Minute))
	s.Error(s.repo.DeleteByPrefix(s.ctx, "nutrition:report:abc:"))

	s.Equal(1, s.logs.FilterMessage("Cache set failed").Len())
	s.Equal(1, s.logs.FilterMessage("Cache scan failed").Len())
}

func TestCacheRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CacheRepositoryTestSuite))
}

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client, err := NewClient(context.Background(), config.RedisConfig{
		Host:        server.Host(),
		Port:        port,
		DialTimeout: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewClient_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	host := server.Host()
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)
	server.Close()

	_, err = NewClient(context.Background(), config.RedisConfig{
		Host:        host,
		Port:        port,
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	}, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

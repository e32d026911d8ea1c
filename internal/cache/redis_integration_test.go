package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	cache     *RedisCache
}

func TestRedisIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(RedisIntegrationTestSuite))
}

func (s *RedisIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	addr, err := container.Endpoint(ctx, "")
	s.Require().NoError(err)

	s.cache = NewRedisCache(addr, "foodorders")
	s.Require().NoError(s.cache.Ping(ctx))
}

func (s *RedisIntegrationTestSuite) TearDownSuite() {
	if s.cache != nil {
		s.NoError(s.cache.Close())
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RedisIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.cache.client.FlushDB(context.Background()).Err())
}

func (s *RedisIntegrationTestSuite) TestSetGet() {
	ctx := context.Background()
	key := s.cache.GenerateKey("order", "123")

	s.Require().NoError(s.cache.Set(ctx, key, `{"orderId":"123","item":"Pizza"}`, time.Minute))

	got, err := s.cache.Get(ctx, key)
	s.Require().NoError(err)
	s.Equal(`{"orderId":"123","item":"Pizza"}`, got)

	ttl, err := s.cache.client.TTL(ctx, key).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *RedisIntegrationTestSuite) TestMissIsEmptyNotError() {
	got, err := s.cache.Get(context.Background(), s.cache.GenerateKey("order", "999999"))
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *RedisIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	key := s.cache.GenerateKey("order", "7")

	s.Require().NoError(s.cache.Set(ctx, key, "x", time.Minute))
	s.Require().NoError(s.cache.Delete(ctx, key))

	got, err := s.cache.Get(ctx, key)
	s.Require().NoError(err)
	s.Empty(got)

	// deleting an absent key is not an error
	s.NoError(s.cache.Delete(ctx, key))
}

func (s *RedisIntegrationTestSuite) TestExpiry() {
	ctx := context.Background()
	key := s.cache.GenerateKey("order", "8")

	s.Require().NoError(s.cache.Set(ctx, key, "x", 200*time.Millisecond))

	s.Eventually(func() bool {
		got, err := s.cache.Get(ctx, key)
		return err == nil && got == ""
	}, 5*time.Second, 50*time.Millisecond)
}

func (s *RedisIntegrationTestSuite) TestClosedClientErrors() {
	c := NewRedisCache(s.cache.client.Options().Addr, "foodorders")
	s.Require().NoError(c.Close())

	_, err := c.Get(context.Background(), "k")
	s.Error(err)
}

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"demo/foodorders/internal/model"
	"demo/foodorders/internal/store"
	"demo/foodorders/internal/store/storemock"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	data   map[string]string
	ttl    time.Duration
	getErr error
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]string{}} }

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	c.data[key] = value.(string)
	c.ttl = ttl
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.data[key], nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *fakeCache) GenerateKey(operation, key string) string { return "test:" + operation + ":" + key }

func TestCached_MissThenHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := storemock.NewMockRepository(ctrl)
	c := newFakeCache()
	cached := store.NewCached(repo, c, time.Minute, nil)

	exp := model.Order{OrderID: "5", Item: "Ramen"}
	repo.EXPECT().GetOrder(gomock.Any(), "5").Return(exp, true, nil).Times(1)

	got, ok, err := cached.GetOrder(context.Background(), "5")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, exp, got)
	require.Equal(t, time.Minute, c.ttl)
	require.JSONEq(t, `{"orderId":"5","item":"Ramen"}`, c.data["test:order:5"])

	got, ok, err = cached.GetOrder(context.Background(), "5")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, exp, got)
}

func TestCached_NotFoundIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := storemock.NewMockRepository(ctrl)
	c := newFakeCache()
	cached := store.NewCached(repo, c, time.Minute, nil)

	repo.EXPECT().GetOrder(gomock.Any(), "5").Return(model.Order{}, false, nil).Times(2)

	for i := 0; i < 2; i++ {
		_, ok, err := cached.GetOrder(context.Background(), "5")
		require.NoError(t, err)
		require.False(t, ok)
	}
	require.Empty(t, c.data)
}

func TestCached_UpsertInvalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := storemock.NewMockRepository(ctrl)
	c := newFakeCache()
	c.data["test:order:5"] = `{"orderId":"5","item":"Ramen"}`
	cached := store.NewCached(repo, c, time.Minute, nil)

	o := model.Order{OrderID: "5", Item: "Udon"}
	repo.EXPECT().UpsertOrder(gomock.Any(), o).Return(nil)

	require.NoError(t, cached.UpsertOrder(context.Background(), o))
	require.NotContains(t, c.data, "test:order:5")
}

func TestCached_UpsertErrorKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := storemock.NewMockRepository(ctrl)
	c := newFakeCache()
	c.data["test:order:5"] = `{"orderId":"5","item":"Ramen"}`
	cached := store.NewCached(repo, c, time.Minute, nil)

	repo.EXPECT().UpsertOrder(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	require.Error(t, cached.UpsertOrder(context.Background(), model.Order{OrderID: "5", Item: "Udon"}))
	require.Contains(t, c.data, "test:order:5")
}

func TestCached_CacheErrorFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := storemock.NewMockRepository(ctrl)
	c := newFakeCache()
	c.getErr = errors.New("redis down")
	cached := store.NewCached(repo, c, time.Minute, nil)

	exp := model.Order{OrderID: "5", Item: "Ramen"}
	repo.EXPECT().GetOrder(gomock.Any(), "5").Return(exp, true, nil)

	got, ok, err := cached.GetOrder(context.Background(), "5")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, exp, got)
}

package myredis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"myinventory/domain"
	"myinventory/helpers"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisUniversalClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func fixedNow(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestNewRedisUniversalClient(t *testing.T) {
	_, err := NewRedisUniversalClient("")
	require.Error(t, err)

	_, err = NewRedisUniversalClient("redis://%zz")
	require.Error(t, err)

	client, err := NewRedisUniversalClient("localhost:6379")
	require.NoError(t, err)
	client.Close()
}

func TestNewInventory_Panics(t *testing.T) {
	_, client := setupTestRedis(t)
	assert.PanicsWithValue(t, "myredis.inventory.go: client is required", func() {
		NewInventory(nil, time.Now)
	})
	assert.PanicsWithValue(t, "myredis.inventory.go: now is required", func() {
		NewInventory(client, nil)
	})
}

func TestInventory_ListInstances(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	inv := NewInventory(client, fixedNow(helpers.TestNow()))

	t.Run("empty region", func(t *testing.T) {
		records, err := inv.ListInstances(ctx, "r1")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("ordered by id and scoped to region", func(t *testing.T) {
		for _, id := range []string{"i-3", "i-1", "i-2"} {
			require.NoError(t, inv.WriteInstance(ctx, "r1", domain.InstanceRecord{
				ID:         id,
				Name:       helpers.Ptr("host-" + id),
				PrivateIPs: []string{"10.0.0.1"},
			}))
		}
		require.NoError(t, inv.WriteInstance(ctx, "r10", domain.InstanceRecord{ID: "i-9"}))

		records, err := inv.ListInstances(ctx, "r1")
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"i-1", "i-2", "i-3"}, []string{records[0].ID, records[1].ID, records[2].ID})
		assert.Equal(t, "host-i-1", helpers.Value(records[0].Name))
		assert.Equal(t, []string{"10.0.0.1"}, records[0].PrivateIPs)
		assert.Nil(t, records[0].PublicIP)
	})

	t.Run("more records than one scan batch", func(t *testing.T) {
		for i := 0; i < scanBatch+20; i++ {
			require.NoError(t, inv.WriteInstance(ctx, "big", domain.InstanceRecord{ID: fmt.Sprintf("i-%05d", i)}))
		}
		records, err := inv.ListInstances(ctx, "big")
		require.NoError(t, err)
		assert.Len(t, records, scanBatch+20)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "inventory:bad:i-1", "{invalid", 0).Err())
		_, err := inv.ListInstances(ctx, "bad")
		require.Error(t, err)
	})
}

func TestInventory_ListStatuses(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	inv := NewInventory(client, fixedNow(helpers.TestNow()))

	require.NoError(t, inv.WriteInstance(ctx, "r1", domain.InstanceRecord{ID: "i-1", State: helpers.Ptr("running")}))
	require.NoError(t, inv.WriteInstance(ctx, "r1", domain.InstanceRecord{ID: "i-2"}))
	require.NoError(t, inv.SetState(ctx, "r1", "i-2", "stopped"))
	require.NoError(t, inv.SetState(ctx, "r1", "i-unknown", "stopped"))

	statuses, err := inv.ListStatuses(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []domain.InstanceStatus{
		{ID: "i-1", State: helpers.Ptr("running")},
		{ID: "i-2", State: helpers.Ptr("stopped")},
	}, statuses)
}

func TestInventory_HasChangeEventsSince(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	now := helpers.TestNow()
	clock := now
	inv := NewInventory(client, func() time.Time { return clock })

	changed, err := inv.HasChangeEventsSince(ctx, "r1", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, changed, "no marker")

	require.NoError(t, inv.WriteInstance(ctx, "r1", domain.InstanceRecord{ID: "i-1"}))

	changed, err = inv.HasChangeEventsSince(ctx, "r1", now.Add(-time.Second))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = inv.HasChangeEventsSince(ctx, "r1", now)
	require.NoError(t, err)
	assert.False(t, changed, "change at exactly since is not after it")

	clock = now.Add(time.Minute)
	require.NoError(t, inv.SetState(ctx, "r1", "i-1", "stopped"))
	changed, err = inv.HasChangeEventsSince(ctx, "r1", now)
	require.NoError(t, err)
	assert.False(t, changed, "state changes are not structural")

	require.NoError(t, inv.DeleteInstance(ctx, "r1", "i-1"))
	changed, err = inv.HasChangeEventsSince(ctx, "r1", now)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, client.Set(ctx, "inventory-changes:r2", "yesterday", 0).Err())
	_, err = inv.HasChangeEventsSince(ctx, "r2", now)
	require.Error(t, err)
}

func TestInventory_ListRegions(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	inv := NewInventory(client, fixedNow(helpers.TestNow()))

	regions, err := inv.ListRegions(ctx)
	require.NoError(t, err)
	assert.Empty(t, regions)

	require.NoError(t, inv.WriteInstance(ctx, "us-east-1", domain.InstanceRecord{ID: "i-1"}))
	require.NoError(t, inv.WriteInstance(ctx, "eu-west-1", domain.InstanceRecord{ID: "i-2"}))
	require.NoError(t, inv.WriteInstance(ctx, "us-east-1", domain.InstanceRecord{ID: "i-3"}))

	regions, err = inv.ListRegions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"eu-west-1", "us-east-1"}, regions)
}

func TestInventory_RedisDown(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	inv := NewInventory(client, fixedNow(helpers.TestNow()))
	mr.Close()

	_, err := inv.ListInstances(ctx, "r1")
	require.Error(t, err)
	_, err = inv.HasChangeEventsSince(ctx, "r1", helpers.TestNow())
	require.Error(t, err)
	_, err = inv.ListRegions(ctx)
	require.Error(t, err)
	err = inv.WriteInstance(ctx, "r1", domain.InstanceRecord{ID: "i-1"})
	require.Error(t, err)
}

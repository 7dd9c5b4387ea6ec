package main

import (
	"context"
	"fmt"
	"time"

	"myinventory/adapters/awsinventory"
	"myinventory/adapters/fileinventory"
	"myinventory/adapters/myredis"
	"myinventory/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// inventorySource is an inventory source that can also list its regions.
type inventorySource interface {
	interfaces.InventorySource
	interfaces.RegionLister
}

// newInventorySource builds the source selected by config.Source. The returned close func releases it.
func newInventorySource(ctx context.Context, config *MyInventoryConfig, logger log.Logger) (inventorySource, func(), error) {
	switch config.Source {
	case SourceRedis:
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Redis client, err: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			redisClient.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis, err: %w", err)
		}
		level.Info(logger).Log("msg", "Connected to Redis")

		return myredis.NewInventory(redisClient, time.Now), func() { redisClient.Close() }, nil

	case SourceFile:
		inv, err := fileinventory.NewInventory(config.InventoryFile, time.Now, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open inventory file, err: %w", err)
		}
		return inv, func() { inv.Close() }, nil

	case SourceAWS:
		clients, err := awsinventory.LoadClients(ctx, config.AWSRegion)
		if err != nil {
			return nil, nil, err
		}
		return awsinventory.NewInventory(clients, config.AWSRegion), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown inventory source %q", config.Source)
	}
}

package myredis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"myinventory/domain"
	"myinventory/helpers"

	"github.com/go-redis/redis/v8"
)

const (
	recordPrefix  = "inventory"
	changesPrefix = "inventory-changes"
	regionsKey    = "inventory-regions"
	scanBatch     = 500
)

// Inventory is a Redis-backed instance registry. Records are stored as JSON under
// inventory:<region>:<id>, the last structural change of a region as unix milliseconds under
// inventory-changes:<region> and the known regions in the set inventory-regions.
//
// Implements interfaces.InventorySource and interfaces.RegionLister.
type Inventory struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewInventory creates a Redis inventory. now stamps structural changes made through the write methods.
func NewInventory(client redis.UniversalClient, now func() time.Time) *Inventory {
	return &Inventory{
		client: helpers.NilPanic(client, "myredis.inventory.go: client is required"),
		now:    helpers.NilPanic(now, "myredis.inventory.go: now is required"),
	}
}

// ListInstances returns all records of region ordered by instance id.
func (r *Inventory) ListInstances(ctx context.Context, region string) ([]domain.InstanceRecord, error) {
	keys, err := r.scanKeys(ctx, r.regionPattern(region))
	if err != nil {
		return nil, err
	}
	slices.Sort(keys)

	records := make([]domain.InstanceRecord, 0, len(keys))
	for batch := range slices.Chunk(keys, scanBatch) {
		values, err := r.client.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, fmt.Errorf("redis mget error, err: %w", err)
		}
		for i, v := range values {
			s, ok := v.(string)
			if !ok {
				// deleted between SCAN and MGET
				continue
			}
			var rec domain.InstanceRecord
			if err := json.Unmarshal([]byte(s), &rec); err != nil {
				return nil, fmt.Errorf("can't unmarshal record (key='%s'), err: %w", batch[i], err)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// ListStatuses returns the id and state of every record of region.
func (r *Inventory) ListStatuses(ctx context.Context, region string) ([]domain.InstanceStatus, error) {
	records, err := r.ListInstances(ctx, region)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InstanceStatus, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.InstanceStatus{ID: rec.ID, State: rec.State})
	}
	return out, nil
}

// HasChangeEventsSince reports whether the region's last structural change is after since.
// A region that never recorded a change reports false.
func (r *Inventory) HasChangeEventsSince(ctx context.Context, region string, since time.Time) (bool, error) {
	v, err := r.client.Get(ctx, changesPrefix+":"+region).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get change marker error, err: %w", err)
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return false, fmt.Errorf("invalid change marker %q for region %s, err: %w", v, region, err)
	}
	return time.UnixMilli(ms).After(since), nil
}

// ListRegions returns the regions that ever had a record written, sorted.
func (r *Inventory) ListRegions(ctx context.Context) ([]string, error) {
	regions, err := r.client.SMembers(ctx, regionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers error, err: %w", err)
	}
	slices.Sort(regions)
	return regions, nil
}

// WriteInstance stores rec in region and records a structural change.
func (r *Inventory) WriteInstance(ctx context.Context, region string, rec domain.InstanceRecord) error {
	helpers.StrPanic(rec.ID, "myredis.inventory.go: record id is required")
	bytes, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("can't marshal record %s, err: %w", rec.ID, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.recordKey(region, rec.ID), bytes, 0)
		pipe.SAdd(ctx, regionsKey, region)
		pipe.Set(ctx, changesPrefix+":"+region, r.now().UnixMilli(), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("can't write record %s to redis (region='%s'), err: %w", rec.ID, region, err)
	}
	return nil
}

// DeleteInstance removes the record id from region and records a structural change.
func (r *Inventory) DeleteInstance(ctx context.Context, region, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.recordKey(region, id))
		pipe.Set(ctx, changesPrefix+":"+region, r.now().UnixMilli(), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("can't delete record %s from redis (region='%s'), err: %w", id, region, err)
	}
	return nil
}

// SetState overwrites the state of an existing record. A state change is not structural,
// so no change is recorded. Unknown ids are ignored.
func (r *Inventory) SetState(ctx context.Context, region, id, state string) error {
	key := r.recordKey(region, id)
	bytes, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get record error (key='%s'), err: %w", key, err)
	}

	var rec domain.InstanceRecord
	if err := json.Unmarshal(bytes, &rec); err != nil {
		return fmt.Errorf("can't unmarshal record (key='%s'), err: %w", key, err)
	}
	rec.State = helpers.NonEmptyPtr(state)
	if bytes, err = json.Marshal(rec); err != nil {
		return fmt.Errorf("can't marshal record %s, err: %w", id, err)
	}
	if err := r.client.Set(ctx, key, bytes, 0).Err(); err != nil {
		return fmt.Errorf("redis set record error (key='%s'), err: %w", key, err)
	}
	return nil
}

func (r *Inventory) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan error (pattern='%s'), err: %w", pattern, err)
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

func (r *Inventory) regionPattern(region string) string {
	return recordPrefix + ":" + escapeGlob(region) + ":*"
}

func (r *Inventory) recordKey(region, id string) string {
	return recordPrefix + ":" + region + ":" + id
}

var globEscaper = strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`, `\`, `\\`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

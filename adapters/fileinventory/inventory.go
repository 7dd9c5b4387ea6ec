// Package fileinventory serves instance records from a YAML file, for local runs and demos.
package fileinventory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"myinventory/domain"
	"myinventory/helpers"

	"github.com/fsnotify/fsnotify"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"
)

// File is the on-disk format:
//
//	regions:
//	  us-east-1:
//	    - id: i-0a1
//	      name: web-1
//	      state: running
type File struct {
	Regions map[string][]domain.InstanceRecord `yaml:"regions"`
}

// Inventory reads the YAML file on every call, so edits are visible at the next fetch.
// Any write to the file counts as a change event for every region.
//
// Implements interfaces.InventorySource and interfaces.RegionLister.
type Inventory struct {
	path    string
	now     func() time.Time
	logger  log.Logger
	watcher *fsnotify.Watcher

	changedAt atomic.Int64 // unix nanoseconds of the last observed write
	done      chan struct{}
}

// NewInventory loads path once to validate it and starts watching it for writes.
// The caller must Close the inventory.
func NewInventory(path string, now func() time.Time, logger log.Logger) (*Inventory, error) {
	helpers.StrPanic(path, "fileinventory.inventory.go: path is required")
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("can't resolve inventory file path, err: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("can't stat inventory file, err: %w", err)
	}
	if _, err := readFile(path); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher, err: %w", err)
	}
	// Editors often replace the file instead of writing it, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to add watch for %s, err: %w", filepath.Dir(path), err)
	}

	inv := &Inventory{
		path:    path,
		now:     helpers.NilPanic(now, "fileinventory.inventory.go: now is required"),
		logger:  log.With(helpers.NilPanic(logger, "fileinventory.inventory.go: logger is required"), "component", "fileinventory"),
		watcher: watcher,
		done:    make(chan struct{}),
	}
	inv.changedAt.Store(info.ModTime().UnixNano())

	go inv.watchLoop()
	return inv, nil
}

// Close stops watching the file.
func (i *Inventory) Close() error {
	err := i.watcher.Close()
	<-i.done
	if err != nil {
		return fmt.Errorf("failed to close file watcher, err: %w", err)
	}
	return nil
}

func (i *Inventory) watchLoop() {
	defer close(i.done)
	for {
		select {
		case event, ok := <-i.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != i.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				i.changedAt.Store(i.now().UnixNano())
				level.Debug(i.logger).Log("msg", "inventory file changed", "op", event.Op)
			}
		case err, ok := <-i.watcher.Errors:
			if !ok {
				return
			}
			level.Error(i.logger).Log("msg", "inventory file watcher error", "err", err)
		}
	}
}

// ListInstances returns the region's records in file order.
func (i *Inventory) ListInstances(ctx context.Context, region string) ([]domain.InstanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := readFile(i.path)
	if err != nil {
		return nil, err
	}
	return f.Regions[region], nil
}

// ListStatuses returns the id and state of every record of region.
func (i *Inventory) ListStatuses(ctx context.Context, region string) ([]domain.InstanceStatus, error) {
	records, err := i.ListInstances(ctx, region)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InstanceStatus, 0, len(records))
	for _, r := range records {
		out = append(out, domain.InstanceStatus{ID: r.ID, State: r.State})
	}
	return out, nil
}

// HasChangeEventsSince reports whether the file was written after since.
func (i *Inventory) HasChangeEventsSince(ctx context.Context, region string, since time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return time.Unix(0, i.changedAt.Load()).After(since), nil
}

// ListRegions returns the regions present in the file, sorted.
func (i *Inventory) ListRegions(ctx context.Context) ([]string, error) {
	f, err := readFile(i.path)
	if err != nil {
		return nil, err
	}
	regions := make([]string, 0, len(f.Regions))
	for r := range f.Regions {
		regions = append(regions, r)
	}
	slices.Sort(regions)
	return regions, nil
}

func readFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("can't read inventory file, err: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("can't parse inventory file %s, err: %w", path, err)
	}
	for region, records := range f.Regions {
		for n, r := range records {
			if r.ID == "" {
				return File{}, fmt.Errorf("inventory file %s: region %s record #%d has no id", path, region, n)
			}
		}
	}
	return f, nil
}

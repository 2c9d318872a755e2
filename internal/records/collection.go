// Package records manages the group-scoped record kinds: checklist items, notes and
// attendance dates. Each kind is one flat collection; every read filters by group id
// and every write publishes the group's edited segment through partition.Merge.
package records

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/gameochtend/internal/groups"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/partition"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
)

// collection is a flat, group-scoped record collection stored under one key.
type collection[T partition.Record] struct {
	kv     storage.KV
	key    string
	groups *groups.Manager
	logger *slog.Logger
}

func newCollection[T partition.Record](kv storage.KV, key string, gm *groups.Manager, logger *slog.Logger) collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return collection[T]{kv: kv, key: key, groups: gm, logger: logger}
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	return storage.Read(ctx, c.kv, c.key, []T{})
}

// list returns groupID's records after checking the session user belongs to the group.
func (c collection[T]) list(ctx context.Context, sess session.Session, groupID string) ([]T, models.Group, error) {
	g, err := c.groups.Get(ctx, sess, groupID)
	if err != nil {
		return nil, models.Group{}, err
	}
	all, err := c.all(ctx)
	if err != nil {
		return nil, models.Group{}, err
	}
	return partition.Filter(groupID, all), g, nil
}

// owner resolves the group of recordID and checks the session user belongs to it.
// Records of deleted groups resolve to ErrNotFound.
func (c collection[T]) owner(ctx context.Context, sess session.Session, recordID string) (models.Group, error) {
	all, err := c.all(ctx)
	if err != nil {
		return models.Group{}, err
	}
	groupID, ok := partition.NewIndex(all).GroupOf(recordID)
	if !ok {
		return models.Group{}, fmt.Errorf("%w: record %s", models.ErrNotFound, recordID)
	}
	return c.groups.Get(ctx, sess, groupID)
}

// segment returns groupID's records as currently stored.
func (c collection[T]) segment(ctx context.Context, groupID string) ([]T, error) {
	all, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	return partition.Filter(groupID, all), nil
}

// publish replaces groupID's segment with replacement. Record ids must be unique
// within replacement and must not belong to another group.
func (c collection[T]) publish(ctx context.Context, groupID string, replacement []T) error {
	seen := make(map[string]bool, len(replacement))
	for _, r := range replacement {
		if seen[r.RecordID()] {
			return fmt.Errorf("%w: record %s appears twice", models.ErrValidation, r.RecordID())
		}
		seen[r.RecordID()] = true
	}
	return storage.Update(ctx, c.kv, c.key, []T{}, func(all []T) ([]T, error) {
		idx := partition.NewIndex(all)
		for _, r := range replacement {
			if owner, ok := idx.GroupOf(r.RecordID()); ok && owner != groupID {
				return nil, fmt.Errorf("%w: record %s belongs to another group", models.ErrValidation, r.RecordID())
			}
		}
		return partition.Merge(groupID, all, replacement), nil
	})
}

// modify applies fn to one of groupID's records and publishes the edited segment.
func (c collection[T]) modify(ctx context.Context, groupID, recordID string, fn func(*T) error) (T, error) {
	var zero T
	current, err := c.segment(ctx, groupID)
	if err != nil {
		return zero, err
	}
	i := slices.IndexFunc(current, func(r T) bool { return r.RecordID() == recordID })
	if i < 0 {
		return zero, fmt.Errorf("%w: record %s", models.ErrNotFound, recordID)
	}
	if err := fn(&current[i]); err != nil {
		return zero, err
	}
	if err := c.publish(ctx, groupID, current); err != nil {
		return zero, err
	}
	return current[i], nil
}

// remove deletes one of groupID's records and returns what remains of the group, in order.
func (c collection[T]) remove(ctx context.Context, groupID, recordID string) ([]T, error) {
	current, err := c.segment(ctx, groupID)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(current, func(r T) bool { return r.RecordID() == recordID })
	if i < 0 {
		return nil, fmt.Errorf("%w: record %s", models.ErrNotFound, recordID)
	}
	current = slices.Delete(current, i, i+1)
	if err := c.publish(ctx, groupID, current); err != nil {
		return nil, err
	}
	return current, nil
}

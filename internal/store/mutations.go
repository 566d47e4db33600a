package store

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
)

// createOp writes a new entity and logs a CREATE.
func createOp[V any](
	ctx context.Context, s *Store, op string, entity changelog.EntityType,
	idOf func(V) string,
	call func(ctx context.Context) (V, error),
	apply func(st *state, v V),
) (V, error) {
	return mutate(ctx, s, op,
		func(ctx context.Context) (mutation[V], error) {
			created, err := call(ctx)
			if err != nil {
				return mutation[V]{}, err
			}
			return mutation[V]{
				value:   created,
				applied: true,
				changes: []changelog.Change{{
					EntityType: entity,
					EntityID:   idOf(created),
					Action:     changelog.ActionCreate,
					After:      created,
				}},
			}, nil
		}, apply)
}

// updateOp patches one entity and logs an UPDATE with both snapshots. pin,
// when set, restores fields of the before snapshot that must never change.
func updateOp[V any](
	ctx context.Context, s *Store, op string, entity changelog.EntityType, entityID, reason string,
	before func(ctx context.Context) (*V, error),
	call func(ctx context.Context) (*V, error),
	pin func(before, after V) V,
	apply func(st *state, v V),
) (*V, error) {
	return mutate(ctx, s, op,
		func(ctx context.Context) (mutation[*V], error) {
			prev, err := before(ctx)
			if err != nil {
				return mutation[*V]{}, err
			}
			updated, err := call(ctx)
			if err != nil || updated == nil {
				return mutation[*V]{}, err
			}
			next := *updated
			if pin != nil && prev != nil {
				next = pin(*prev, next)
			}
			return mutation[*V]{
				value:   &next,
				applied: true,
				changes: []changelog.Change{{
					EntityType: entity,
					EntityID:   entityID,
					Action:     changelog.ActionUpdate,
					Before:     prev,
					After:      next,
					Reason:     reason,
				}},
			}, nil
		},
		func(st *state, v *V) { apply(st, *v) })
}

// softDeleteOp flips an entity to its removed state through remove and logs a
// DELETE. The table row is replaced with the flipped entity; no view loses an
// id. When the entity was never loaded the backend copy is used instead.
func softDeleteOp[V any](
	ctx context.Context, s *Store, op string, entity changelog.EntityType, entityID string,
	before func(ctx context.Context) (*V, error),
	remove func(ctx context.Context) (bool, error),
	refetch func(ctx context.Context) (*V, error),
	flip func(V) V,
	apply func(st *state, v V),
) (bool, error) {
	var after *V
	return mutate(ctx, s, op,
		func(ctx context.Context) (mutation[bool], error) {
			prev, err := before(ctx)
			if err != nil {
				return mutation[bool]{}, err
			}
			ok, err := remove(ctx)
			if err != nil || !ok {
				return mutation[bool]{}, err
			}
			if prev != nil {
				flipped := flip(*prev)
				after = &flipped
			} else if after, err = refetch(ctx); err != nil {
				return mutation[bool]{}, err
			}
			return mutation[bool]{
				value:   true,
				applied: true,
				changes: []changelog.Change{{
					EntityType: entity,
					EntityID:   entityID,
					Action:     changelog.ActionDelete,
					Before:     prev,
					After:      after,
				}},
			}, nil
		},
		func(st *state, _ bool) {
			if after != nil {
				apply(st, *after)
			}
		})
}

// lookup returns the table row for id when loaded, else asks the backend.
func lookup[K comparable, V any](ctx context.Context, c collection[K, V], id K, get func(ctx context.Context, id K) (*V, error)) (*V, error) {
	if v, ok := c.get(id); ok {
		return &v, nil
	}
	return get(ctx, id)
}

package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/logicx/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProjectStoreContract runs a suite of tests to verify that a ProjectStore implementation
// adheres to the defined interface contract.
func RunProjectStoreContract(t *testing.T, store ProjectStore) {
	ctx := context.Background()
	name := "contract-test-project-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Build a project with a connection and a wire
		p := domain.DefaultProject()
		_, ok := p.Connect(domain.OutputOf(0, 0), domain.InputOf(2, 1))
		require.True(t, ok)

		// 2. Save
		err := store.Save(ctx, name, p)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Nil(t, domain.Diff(p, loaded))
		assert.Equal(t, p.Connections(), loaded.Connections())
		assert.Equal(t, p.Wires(), loaded.Wires())
	})

	t.Run("Snapshot Isolation", func(t *testing.T) {
		p := domain.DefaultProject()
		require.NoError(t, store.Save(ctx, name, p))

		// Mutating the original after Save must not leak into the store
		p.Move(2, domain.Pt(9, 9))
		require.NoError(t, p.Delete(0))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		pl, ok := loaded.Placement(2)
		require.True(t, ok)
		assert.Equal(t, domain.Pt(2, 0), pl.Pos)
		assert.Equal(t, 3, loaded.Len())

		// Nor may mutating a loaded copy
		loaded.Move(2, domain.Pt(7, 7))
		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		pl, _ = again.Placement(2)
		assert.Equal(t, domain.Pt(2, 0), pl.Pos)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Save(ctx, name, domain.DefaultProject())
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound, "Load after Delete should return ErrProjectNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing name is not an error")
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 snapshots
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id2, domain.DefaultProject())
		_ = store.Save(ctx, id1, domain.NewProject())

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		// List
		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})
}

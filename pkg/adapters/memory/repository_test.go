package memory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/seedwork/pkg/adapters/memory"
	"github.com/aretw0/seedwork/pkg/core"
)

type stubProps struct {
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type stub struct {
	*core.Entity[stubProps]
}

func newStub(name string, price int) *stub {
	return &stub{Entity: core.NewEntity(stubProps{Name: name, Price: price, CreatedAt: time.Now()})}
}

func names(items []*stub) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Props.Name)
	}
	return out
}

func TestRepository_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*stub](memory.Config{Name: "stubs"})

	a := newStub("a", 1)
	require.NoError(t, repo.Insert(ctx, a))

	found, err := repo.FindByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, a, found)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*stub{a}, all)
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo := memory.NewRepository[*stub](memory.Config{})
	id := core.NewID().String()

	_, err := repo.FindByID(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "Entity not found using ID: "+id, err.Error())

	var nf *core.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, id, nf.ID)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*stub](memory.Config{})

	a, b := newStub("a", 1), newStub("b", 2)
	require.NoError(t, repo.Seed(ctx, a, b))

	t.Run("replaces in place", func(t *testing.T) {
		changed := &stub{Entity: core.NewEntity(stubProps{Name: "a2"}, a.Identity())}
		require.NoError(t, repo.Update(ctx, changed))

		all, _ := repo.FindAll(ctx)
		assert.Equal(t, []string{"a2", "b"}, names(all))
	})

	t.Run("unknown id leaves store untouched", func(t *testing.T) {
		before, _ := repo.FindAll(ctx)

		err := repo.Update(ctx, newStub("ghost", 0))
		assert.ErrorIs(t, err, core.ErrNotFound)

		after, _ := repo.FindAll(ctx)
		assert.Equal(t, before, after)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*stub](memory.Config{})

	items := []*stub{newStub("a", 1), newStub("b", 2), newStub("c", 3), newStub("d", 4)}
	require.NoError(t, repo.Seed(ctx, items...))

	require.NoError(t, repo.Delete(ctx, items[1].ID()))

	all, _ := repo.FindAll(ctx)
	assert.Equal(t, []string{"a", "c", "d"}, names(all))

	err := repo.Delete(ctx, items[1].ID())
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 3, repo.Len())
}

func TestRepository_FindAllIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*stub](memory.Config{})
	require.NoError(t, repo.Insert(ctx, newStub("a", 1)))

	all, _ := repo.FindAll(ctx)
	all[0] = newStub("intruder", 0)
	_ = append(all, newStub("extra", 0))

	fresh, _ := repo.FindAll(ctx)
	assert.Equal(t, []string{"a"}, names(fresh))
}

func TestRepository_Watch(t *testing.T) {
	repo := memory.NewRepository[*stub](memory.Config{EventBuffer: 10})

	ctx, cancel := context.WithCancel(context.Background())
	events, err := repo.Watch(ctx, "*")
	require.NoError(t, err)

	a := newStub("a", 1)
	writeCtx := core.WithChangeReason(context.Background(), "test")
	require.NoError(t, repo.Insert(writeCtx, a))
	require.NoError(t, repo.Update(writeCtx, a))
	require.NoError(t, repo.Delete(writeCtx, a.ID()))

	var got []core.EventType
	for i := 0; i < 3; i++ {
		select {
		case e := <-events:
			assert.Equal(t, a.ID(), e.ID)
			assert.Equal(t, "test", e.Reason)
			got = append(got, e.Type)
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for event")
		}
	}
	assert.Equal(t, []core.EventType{core.EventCreate, core.EventModify, core.EventDelete}, got)

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestRepository_WatchPattern(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := memory.NewRepository[*stub](memory.Config{})

	a := newStub("a", 1)
	events, err := repo.Watch(ctx, a.ID()[:8]+"*")
	require.NoError(t, err)

	other := newStub("b", 2)
	for strings.HasPrefix(other.ID(), a.ID()[:8]) {
		other = newStub("b", 2)
	}
	require.NoError(t, repo.Insert(ctx, other))
	require.NoError(t, repo.Insert(ctx, a))

	select {
	case e := <-events:
		assert.Equal(t, a.ID(), e.ID)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	_, err = repo.Watch(ctx, "[")
	assert.Error(t, err)
}

func TestRepository_SlowWatcherDoesNotBlockWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := memory.NewRepository[*stub](memory.Config{EventBuffer: 1})
	_, err := repo.Watch(ctx, "")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			_ = repo.Insert(ctx, newStub("x", i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("writes blocked on a full subscriber")
	}
	assert.Equal(t, 5, repo.Len())
}

func TestRepository_State(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := memory.NewRepository[*stub](memory.Config{Name: "stubs"})
	require.NoError(t, repo.Seed(ctx, newStub("a", 1), newStub("b", 2)))
	_, err := repo.Watch(ctx, "*")
	require.NoError(t, err)

	state, ok := repo.State().(memory.RepositoryState)
	require.True(t, ok)
	assert.Equal(t, "stubs", state.Name)
	assert.Equal(t, 2, state.Size)
	assert.Equal(t, 1, state.Subscribers)
	assert.Equal(t, 100, state.EventBuffer)
	assert.Equal(t, "repository", repo.ComponentType())
}

package adapters

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func newInMemoryBadger(t *testing.T) *BadgerStorageAdapter {
	t.Helper()
	adapter, err := NewBadgerStorageAdapter("")
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func TestBadgerStorageAdapter_SaveLoadPreservesOrder(t *testing.T) {
	adapter := newInMemoryBadger(t)

	// ids deliberately out of order: save order must win
	late := ulid.Make()
	early := ulid.MustNew(0, nil)
	events := []Event{
		{ID: late, Name: "first"},
		{ID: early, Name: "second"},
		{Name: "third", Params: Params{"n": 3}},
	}
	require.NoError(t, adapter.Save(events))

	loaded, err := adapter.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	require.Equal(t, "first", loaded[0].Name)
	require.Equal(t, late, loaded[0].ID)
	require.Equal(t, "second", loaded[1].Name)
	require.Equal(t, "third", loaded[2].Name)
	require.EqualValues(t, 3, loaded[2].Params["n"])
}

func TestBadgerStorageAdapter_SaveReplaces(t *testing.T) {
	adapter := newInMemoryBadger(t)

	require.NoError(t, adapter.Save([]Event{{Name: "a"}, {Name: "b"}, {Name: "c"}}))
	require.NoError(t, adapter.Save([]Event{{Name: "d"}}))

	loaded, err := adapter.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "d", loaded[0].Name)
}

func TestBadgerStorageAdapter_LoadEmpty(t *testing.T) {
	adapter := newInMemoryBadger(t)

	loaded, err := adapter.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Empty(t, loaded)
}

func TestBadgerStorageAdapter_Clear(t *testing.T) {
	adapter := newInMemoryBadger(t)

	require.NoError(t, adapter.Save([]Event{{Name: "a"}}))
	require.NoError(t, adapter.Clear())

	loaded, err := adapter.Load()
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestBadgerStorageAdapter_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	adapter, err := NewBadgerStorageAdapter(dir)
	require.NoError(t, err)
	require.NoError(t, adapter.Save([]Event{{Name: "kept"}}))
	require.NoError(t, adapter.Close())

	reopened, err := NewBadgerStorageAdapter(dir)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "kept", loaded[0].Name)
}

func TestBadgerStorageAdapter_SaveMarshalError(t *testing.T) {
	adapter := newInMemoryBadger(t)

	err := adapter.Save([]Event{{Name: "ok"}, {Name: "bad", Params: Params{"ch": make(chan int)}}})
	require.Error(t, err)

	// the failed transaction must not have touched the stored queue
	loaded, err := adapter.Load()
	require.NoError(t, err)
	require.Empty(t, loaded)
}

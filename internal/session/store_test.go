package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/flatbot/internal/logging"
)

func TestStoreGetOrCreate(t *testing.T) {
	st := NewStore(0, &logging.MockLogger{})

	s := st.GetOrCreate(42, "Ramesh")
	require.NotNil(t, s)
	assert.Equal(t, int64(42), s.ChatID)
	assert.Equal(t, "Ramesh", s.UserName)
	assert.Equal(t, ModeIdle, s.Mode)

	// Same chat gets the same session; the name is captured on creation.
	again := st.GetOrCreate(42, "Someone Else")
	assert.Same(t, s, again)
	assert.Equal(t, "Ramesh", again.UserName)

	assert.Equal(t, 1, st.Len())
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(0, &logging.MockLogger{})
	st.GetOrCreate(1, "a")
	st.GetOrCreate(2, "b")

	st.Delete(1)
	assert.Nil(t, st.Get(1))
	assert.NotNil(t, st.Get(2))
	assert.Equal(t, 1, st.Len())
}

func TestStoreExpiry(t *testing.T) {
	now := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)
	st := NewStore(30*time.Minute, &logging.MockLogger{})
	st.SetClock(func() time.Time { return now })

	s := st.GetOrCreate(42, "Ramesh")
	s.StartFlow(ModeExpense)
	st.Put(s)

	// Within the TTL the session survives.
	now = now.Add(29 * time.Minute)
	assert.NotNil(t, st.Get(42))

	// Get refreshes nothing; past the TTL it is dropped.
	now = now.Add(2 * time.Minute)
	assert.Nil(t, st.Get(42))
	assert.Equal(t, 0, st.Len())
}

func TestStoreZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)
	st := NewStore(0, &logging.MockLogger{})
	st.SetClock(func() time.Time { return now })

	st.GetOrCreate(42, "Ramesh")
	now = now.Add(1000 * time.Hour)
	assert.NotNil(t, st.Get(42))
}

func TestStoreSweep(t *testing.T) {
	now := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)
	st := NewStore(10*time.Minute, &logging.MockLogger{})
	st.SetClock(func() time.Time { return now })

	st.GetOrCreate(1, "a")
	st.GetOrCreate(2, "b")

	now = now.Add(5 * time.Minute)
	fresh := st.GetOrCreate(3, "c")
	st.Put(fresh)

	now = now.Add(6 * time.Minute)
	removed := st.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, st.Len())
	assert.NotNil(t, st.Get(3))
}

package nfc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTagCache_ObserveOncePerPresentation(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	cache := NewTagCache(clock, time.Second)

	assert.True(t, cache.Observe("04A1"))
	clock.Advance(300 * time.Millisecond)
	assert.False(t, cache.Observe("04A1"), "tag still in the field")
	clock.Advance(300 * time.Millisecond)
	assert.False(t, cache.Observe("04A1"))

	assert.True(t, cache.Observe("04B2"), "a different tag is a new presentation")
}

func TestTagCache_ReappearingTagIsNew(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	cache := NewTagCache(clock, time.Second)

	assert.True(t, cache.Observe("04A1"))
	clock.Advance(time.Second)
	assert.True(t, cache.Observe("04A1"))
}

func TestTagCache_Expire(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	cache := NewTagCache(clock, time.Second)

	cache.Observe("04A1")
	clock.Advance(600 * time.Millisecond)
	cache.Observe("04B2")
	assert.True(t, cache.IsCardPresent())

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"04A1"}, cache.Expire())
	assert.True(t, cache.IsCardPresent())

	clock.Advance(time.Second)
	assert.Equal(t, []string{"04B2"}, cache.Expire())
	assert.False(t, cache.IsCardPresent())
	assert.Empty(t, cache.Expire())
}

func TestTagCache_LastEvent(t *testing.T) {
	cache := NewTagCache(nil, 0)

	_, ok := cache.Last()
	assert.False(t, ok)

	cache.SetLast(ReadEvent{Display: "Data on card: hi\nID:  0x01"})
	cache.Observe("01")
	cache.Clear()

	last, ok := cache.Last()
	assert.True(t, ok)
	assert.Equal(t, "Data on card: hi\nID:  0x01", last.Display)
	assert.False(t, cache.IsCardPresent())
}

package main

import (
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotside-studios/nfc-tag-reader/nfc"
)

func newTestAgent(manager nfc.Manager) *Agent {
	quiet := log.New(io.Discard, "", 0)
	agent := NewAgent(manager, nfc.ReaderConfig{
		PollInterval: 10 * time.Millisecond,
		Logger:       quiet,
	}, nil)
	agent.Logger = quiet
	return agent
}

func TestAgent_ForwardsReadEvents(t *testing.T) {
	manager := nfc.NewMockManager()
	mem := make([]byte, 64)
	copy(mem[16:], "hello, tag!")
	tag := &nfc.MockTag{
		TagID:      []byte{0x04, 0x22},
		Techs:      []string{nfc.TechNfcA, nfc.TechMifareUltralight},
		Ultralight: nfc.NewMockUltralight(mem),
	}
	manager.MockDevice.SetTags([]nfc.TagEvent{{Tag: tag, Kind: nfc.TechDiscovered}})

	agent := newTestAgent(manager)

	var (
		mu     sync.Mutex
		events []nfc.ReadEvent
	)
	agent.OnReadEvent(func(ev nfc.ReadEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	require.NoError(t, agent.Start(""))
	defer agent.Stop()
	assert.True(t, agent.IsRunning())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	ev := events[0]
	mu.Unlock()
	assert.Equal(t, nfc.ReaderUltralight, ev.Result.Reader)
	assert.Contains(t, ev.Display, "Data on card: hello, tag!")

	last, ok := agent.LastEvent()
	require.True(t, ok)
	assert.Equal(t, ev.ID, last.ID)
}

func TestAgent_ForwardsStatus(t *testing.T) {
	agent := newTestAgent(nfc.NewMockManager())

	statuses := make(chan nfc.DeviceStatus, 16)
	agent.OnStatus(func(s nfc.DeviceStatus) {
		select {
		case statuses <- s:
		default:
		}
	})

	require.NoError(t, agent.Start("mock:usb:001"))
	defer agent.Stop()

	select {
	case s := <-statuses:
		assert.True(t, s.Connected)
	case <-time.After(2 * time.Second):
		t.Fatal("no status forwarded")
	}
}

func TestAgent_StartTwice(t *testing.T) {
	agent := newTestAgent(nfc.NewMockManager())

	require.NoError(t, agent.Start("mock:usb:001"))
	defer agent.Stop()

	assert.NoError(t, agent.Start("mock:usb:001"), "same device is a no-op")
	assert.Error(t, agent.Start("mock:usb:002"))
}

func TestAgent_StopIdempotent(t *testing.T) {
	agent := newTestAgent(nfc.NewMockManager())
	agent.Stop()

	require.NoError(t, agent.Start(""))
	agent.Stop()
	agent.Stop()
	assert.False(t, agent.IsRunning())

	_, ok := agent.LastEvent()
	assert.False(t, ok)
}

func TestDisplayDevice(t *testing.T) {
	assert.Equal(t, "auto-detect", displayDevice(""))
	assert.Equal(t, "pcsc:ACR122U", displayDevice("pcsc:ACR122U"))
}

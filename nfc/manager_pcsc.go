package nfc

import (
	"fmt"
	"strings"

	"github.com/ebfe/scard"

	"github.com/dotside-studios/nfc-tag-reader/internal/syncutil"
)

// pcscManager implements Manager using PC/SC via ebfe/scard
type pcscManager struct {
	cfg   DeviceConfig
	ctx   *scard.Context
	ctxMu syncutil.Mutex
}

func newPCSCManager(cfg DeviceConfig) *pcscManager {
	return &pcscManager{cfg: cfg}
}

// context returns a valid PC/SC context, re-establishing it when the
// service was restarted underneath us.
func (m *pcscManager) context() (*scard.Context, error) {
	m.ctxMu.Lock()
	defer m.ctxMu.Unlock()

	if m.ctx != nil {
		if _, err := m.ctx.ListReaders(); err == nil {
			return m.ctx, nil
		}
		m.ctx.Release()
		m.ctx = nil
	}

	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("failed to establish PC/SC context: %w", err)
	}
	m.ctx = ctx
	return ctx, nil
}

// OpenDevice opens a reader. The reader may be empty; cards are connected
// lazily by Tags.
func (m *pcscManager) OpenDevice(deviceStr string) (Device, error) {
	ctx, err := m.context()
	if err != nil {
		return nil, err
	}

	readerName := deviceStr
	if readerName == "" {
		readers, err := ctx.ListReaders()
		if err != nil {
			return nil, fmt.Errorf("failed to list readers: %w", err)
		}
		readers = filterContactlessReaders(readers)
		if len(readers) == 0 {
			return nil, ErrNoDevice
		}
		readerName = readers[0]
	}

	if _, err := readerState(ctx, readerName); err != nil {
		return nil, fmt.Errorf("reader %s unavailable: %w", readerName, err)
	}
	return newPCSCDevice(ctx, readerName, m.cfg), nil
}

func (m *pcscManager) ListDevices() ([]string, error) {
	return listWithRetry(func() ([]string, error) {
		ctx, err := m.context()
		if err != nil {
			return nil, err
		}
		readers, err := ctx.ListReaders()
		if err != nil {
			return nil, err
		}
		return filterContactlessReaders(readers), nil
	})
}

// Close releases the PC/SC context.
func (m *pcscManager) Close() error {
	m.ctxMu.Lock()
	defer m.ctxMu.Unlock()

	if m.ctx != nil {
		err := m.ctx.Release()
		m.ctx = nil
		return err
	}
	return nil
}

// readerState returns the current event state of a reader without waiting.
func readerState(ctx *scard.Context, readerName string) (scard.StateFlag, error) {
	states := []scard.ReaderState{
		{Reader: readerName, CurrentState: scard.StateUnaware},
	}
	if err := ctx.GetStatusChange(states, 0); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "timeout") {
			return 0, err
		}
	}
	return states[0].EventState, nil
}

// filterContactlessReaders drops SAM slots from a reader list.
func filterContactlessReaders(readers []string) []string {
	var filtered []string
	for _, r := range readers {
		if strings.Contains(strings.ToUpper(r), "SAM") {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

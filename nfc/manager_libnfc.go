package nfc

import (
	"github.com/clausecker/nfc/v2"
)

// libnfcManager implements Manager using libnfc.
type libnfcManager struct {
	cfg DeviceConfig
}

func newLibnfcManager(cfg DeviceConfig) *libnfcManager {
	return &libnfcManager{cfg: cfg}
}

func (m *libnfcManager) OpenDevice(deviceStr string) (Device, error) {
	dev, err := nfc.Open(deviceStr)
	if err != nil {
		return nil, err
	}
	return newLibnfcDevice(dev, m.cfg), nil
}

func (m *libnfcManager) ListDevices() ([]string, error) {
	return listWithRetry(nfc.ListDevices)
}

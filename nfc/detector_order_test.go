package nfc_test

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dotside-studios/nfc-tag-reader/nfc"
	"github.com/dotside-studios/nfc-tag-reader/nfc/mocks"
)

func newDetector(clock nfc.Clock) *nfc.Detector {
	return nfc.NewDetector(nfc.DetectorConfig{
		Clock:  clock,
		Logger: log.New(io.Discard, "", 0),
	})
}

func TestDetect_CallSequence(t *testing.T) {
	ctrl := gomock.NewController(t)

	tag := mocks.NewMockTagHandle(ctrl)
	ndefTech := mocks.NewMockNdefTech(ctrl)
	isoDep := mocks.NewMockIsoDepTech(ctrl)

	gomock.InOrder(
		tag.EXPECT().Ndef().Return(ndefTech, true),
		ndefTech.EXPECT().Connect().Return(nil),
		ndefTech.EXPECT().Message().Return(nil, nil),
		ndefTech.EXPECT().Close().Return(nil),
		tag.EXPECT().TechList().Return([]string{nfc.TechNfcA, nfc.TechIsoDep}),
		tag.EXPECT().IsoDep().Return(isoDep, true),
		isoDep.EXPECT().Connect().Return(nil),
		isoDep.EXPECT().MaxTransceiveLength().Return(253),
		isoDep.EXPECT().Transceive([]byte{0x00, 0xB0, 0x00, 0x00, 0x00}).Return([]byte{0x48, 0x69}, nil),
		isoDep.EXPECT().Close().Return(nil),
	)

	result := newDetector(nil).Detect(tag)

	assert.True(t, result.Ok())
	assert.Equal(t, nfc.ReaderIsoDep, result.Reader)
	assert.Equal(t, []byte("Hi"), result.Data)
}

func TestDetect_ClosesAfterEveryRetry(t *testing.T) {
	ctrl := gomock.NewController(t)

	tag := mocks.NewMockTagHandle(ctrl)
	isoDep := mocks.NewMockIsoDepTech(ctrl)
	clock := nfc.NewFakeClock(time.Unix(0, 0))

	tag.EXPECT().Ndef().Return(nil, false)
	tag.EXPECT().TechList().Return([]string{nfc.TechIsoDep})
	tag.EXPECT().IsoDep().Return(isoDep, true)
	gomock.InOrder(
		isoDep.EXPECT().Connect().Return(nil),
		isoDep.EXPECT().MaxTransceiveLength().Return(253),
		isoDep.EXPECT().Transceive(gomock.Any()).Return(nil, errors.New("tag lost")).Times(3),
		isoDep.EXPECT().Close().Return(errors.New("already closed")),
	)

	result := newDetector(clock).Detect(tag)

	assert.Equal(t, nfc.OutcomeProtocolExhausted, result.Outcome())
	assert.Equal(t, []time.Duration{nfc.DefaultIsoDepRetryDelay, nfc.DefaultIsoDepRetryDelay}, clock.Sleeps())
}

func TestDetect_UltralightConnectFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	tag := mocks.NewMockTagHandle(ctrl)
	ul := mocks.NewMockUltralightTech(ctrl)

	tag.EXPECT().Ndef().Return(nil, false)
	tag.EXPECT().TechList().Return([]string{nfc.TechMifareUltralight})
	tag.EXPECT().MifareUltralight().Return(ul, true)
	gomock.InOrder(
		ul.EXPECT().Connect().Return(errors.New("no target")),
		ul.EXPECT().Close().Return(nil),
	)

	result := newDetector(nil).Detect(tag)

	assert.False(t, result.Ok())
	assert.Equal(t, nfc.ErrCodeConnectFailed, nfc.GetErrorCode(result.Err))
}

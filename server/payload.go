package server

import (
	"time"

	"github.com/hsanjuan/go-ndef"

	"github.com/dotside-studios/nfc-tag-reader/nfc"
	"github.com/dotside-studios/nfc-tag-reader/protocol"
)

// NewDeviceStatusPayload converts a device status for the wire.
func NewDeviceStatusPayload(status nfc.DeviceStatus) protocol.DeviceStatusPayload {
	return protocol.DeviceStatusPayload{
		Connected:   status.Connected,
		Message:     status.Message,
		CardPresent: status.CardPresent,
	}
}

// NewReadEventPayload converts a read event for the wire. Payloads produced
// by the NDEF reader are also decoded into records.
func NewReadEventPayload(ev nfc.ReadEvent) protocol.ReadEventPayload {
	payload := protocol.ReadEventPayload{
		ID:        ev.ID.String(),
		UID:       protocol.FormatUID(ev.TagID),
		Kind:      ev.Kind.String(),
		Reader:    ev.Result.Reader.String(),
		Outcome:   ev.Result.Outcome().String(),
		Display:   ev.Display,
		Device:    ev.Device,
		ScannedAt: ev.ScannedAt.Format(time.RFC3339),
		Data:      []byte{},
	}

	if ev.Result.Ok() {
		payload.Data = ev.Result.Data
		if ev.Result.Reader == nfc.ReaderNdef {
			payload.Message = decodeNDEF(ev.Result.Data)
		}
	} else {
		errStr := ev.Result.Err.Error()
		payload.Error = &errStr
	}
	return payload
}

// decodeNDEF returns nil when data is not a well-formed NDEF message.
func decodeNDEF(data []byte) *protocol.NDEFMessagePayload {
	if len(data) == 0 {
		return nil
	}
	msg := &ndef.Message{}
	if _, err := msg.Unmarshal(data); err != nil {
		return nil
	}

	out := &protocol.NDEFMessagePayload{
		Type:    "ndef",
		Records: make([]protocol.NDEFRecordPayload, 0, len(msg.Records)),
	}
	for _, rec := range msg.Records {
		out.Records = append(out.Records, recordPayload(rec))
	}
	return out
}

func recordPayload(rec *ndef.Record) protocol.NDEFRecordPayload {
	p := protocol.NDEFRecordPayload{
		Type: rec.Type(),
		TNF:  rec.TNF(),
		ID:   rec.ID(),
	}

	body, err := rec.Payload()
	if err != nil {
		return p
	}
	p.Payload = body.Marshal()

	if rec.TNF() != ndef.NFCForumWellKnownType {
		return p
	}
	switch rec.Type() {
	case "T":
		p.Type = "text"
		p.Content = body.String()
		if len(p.Payload) > 0 {
			langLen := int(p.Payload[0] & 0x3F)
			if 1+langLen <= len(p.Payload) {
				p.Language = string(p.Payload[1 : 1+langLen])
			}
		}
	case "U":
		p.Type = "uri"
		p.Content = body.String()
	}
	return p
}

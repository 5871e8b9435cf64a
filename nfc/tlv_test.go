package nfc

import (
	"bytes"
	"testing"
)

func TestTLVEncode_ShortMessage(t *testing.T) {
	result := TLVEncode([]byte{0x01, 0x02, 0x03, 0x04}, TLVNDEF)

	expected := []byte{0x03, 0x04, 0x01, 0x02, 0x03, 0x04, 0xFE}
	if !bytes.Equal(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestTLVEncode_LongMessage(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}

	result := TLVEncode(data, TLVNDEF)

	if !bytes.Equal(result[:4], []byte{0x03, 0xFF, 0x01, 0x2C}) {
		t.Errorf("unexpected header % X", result[:4])
	}
	if !bytes.Equal(result[4:4+len(data)], data) {
		t.Error("Data mismatch in long format TLV")
	}
	if result[len(result)-1] != TLVTerminator {
		t.Errorf("Expected terminator 0xFE, got 0x%02X", result[len(result)-1])
	}
}

func TestTLVFindNDEF(t *testing.T) {
	long := make([]byte, 300)
	long[299] = 0xAB

	tests := []struct {
		name    string
		data    []byte
		want    []byte
		found   bool
		wantErr bool
	}{
		{
			name:  "ndef first",
			data:  TLVEncode([]byte{0xD1, 0x01}, TLVNDEF),
			want:  []byte{0xD1, 0x01},
			found: true,
		},
		{
			name:  "skips null and lock control",
			data:  append([]byte{0x00, 0x00, 0x01, 0x03, 0xA0, 0x10, 0x44}, TLVEncode([]byte{0x55}, TLVNDEF)...),
			want:  []byte{0x55},
			found: true,
		},
		{
			name:  "long length form",
			data:  TLVEncode(long, TLVNDEF),
			want:  long,
			found: true,
		},
		{
			name:  "terminator before ndef",
			data:  []byte{0xFE, 0x03, 0x01, 0x00},
			found: false,
		},
		{
			name:  "empty area",
			data:  []byte{0x00, 0x00, 0x00},
			found: false,
		},
		{
			name:    "value past end",
			data:    []byte{0x03, 0x10, 0x01},
			wantErr: true,
		},
		{
			name:    "missing length",
			data:    []byte{0x03},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := TLVFindNDEF(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("value = % X, want % X", got, tt.want)
			}
		})
	}
}

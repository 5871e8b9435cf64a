package nfc

// cardFamily is the card type a PC/SC reader reports in its ATR.
type cardFamily int

const (
	familyUnknown cardFamily = iota
	familyClassic
	familyUltralight
	familyDESFire
	familyISO14443_4
)

func (f cardFamily) String() string {
	switch f {
	case familyClassic:
		return "MIFARE Classic"
	case familyUltralight:
		return "MIFARE Ultralight"
	case familyDESFire:
		return "MIFARE DESFire"
	case familyISO14443_4:
		return "ISO14443-4"
	default:
		return "Unknown"
	}
}

// Card name bytes (PC/SC part 3, supplement) mapped to families.
var atrCardNames = map[byte]cardFamily{
	0x01: familyClassic,    // Classic 1K
	0x02: familyClassic,    // Classic 4K
	0x03: familyUltralight, // Ultralight
	0x04: familyClassic,    // Mini
	0x05: familyUltralight, // Ultralight C
	0x06: familyClassic,    // Plus 2K SL1
	0x07: familyClassic,    // Plus 4K SL1
	0x0A: familyClassic,    // Plus 2K SL2
	0x0B: familyClassic,    // Plus 4K SL2
	0x26: familyDESFire,
}

// detectFamilyFromATR parses an ATR built by a contactless PC/SC reader.
//
// Storage cards carry the PC/SC registered application in their historical
// bytes:
//
//	3B 8F 80 01 80 4F 0C A0 00 00 03 06 SS C0 C1 00 00 00 00 TCK
//
// where C0 C1 is the card name. Cards without it are ISO14443-4 when an
// interface byte announces T=1.
func detectFamilyFromATR(atr []byte) cardFamily {
	histStart := findHistoricalBytesStart(atr)
	if histStart < 0 {
		return familyUnknown
	}
	hist := atr[histStart:]

	for i := 0; i+10 < len(hist); i++ {
		if hist[i] == 0x80 && hist[i+1] == 0x4F &&
			hist[i+3] == 0xA0 && hist[i+4] == 0x00 && hist[i+5] == 0x00 &&
			hist[i+6] == 0x03 && hist[i+7] == 0x06 {
			if f, ok := atrCardNames[hist[i+10]]; ok {
				return f
			}
			return familyUnknown
		}
	}

	if announcesT1(atr) {
		return familyISO14443_4
	}
	return familyUnknown
}

// findHistoricalBytesStart returns the index of the first historical byte,
// or -1 when the ATR is malformed or has none.
func findHistoricalBytesStart(atr []byte) int {
	if len(atr) < 2 || (atr[0] != 0x3B && atr[0] != 0x3F) {
		return -1
	}
	if atr[1]&0x0F == 0 {
		return -1
	}

	pos := 2
	td := atr[1]
	for {
		if td&0x10 != 0 {
			pos++ // TAi
		}
		if td&0x20 != 0 {
			pos++ // TBi
		}
		if td&0x40 != 0 {
			pos++ // TCi
		}
		if td&0x80 == 0 {
			break
		}
		if pos >= len(atr) {
			return -1
		}
		td = atr[pos]
		pos++
	}

	if pos >= len(atr) {
		return -1
	}
	return pos
}

// announcesT1 reports whether any TDi byte selects protocol T=1, which
// contactless readers use for ISO14443-4 (T=CL) cards.
func announcesT1(atr []byte) bool {
	if len(atr) < 3 {
		return false
	}
	pos := 2
	td := atr[1]
	for td&0x80 != 0 {
		for _, bit := range []byte{0x10, 0x20, 0x40} {
			if td&bit != 0 {
				pos++
			}
		}
		if pos >= len(atr) {
			return false
		}
		td = atr[pos]
		pos++
		if td&0x0F == 0x01 {
			return true
		}
	}
	return false
}

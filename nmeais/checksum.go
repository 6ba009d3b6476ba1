package nmeais

import (
	"fmt"

	ais "github.com/andmarios/aislib"
)

// CheckedSentence is the outcome of verifying a line's "*HH" checksum.
type CheckedSentence struct {
	Valid    bool
	Checksum byte // the parsed checksum byte, valid or not
}

// VerifyChecksum parses the trailing "*HH" of a "!...*HH" sentence and
// reports both whether it matches the XOR of the bytes between '!' and '*',
// and the checksum byte itself. Callers that only care about validity
// (e.g. to decide a raw passthrough) don't need to re-parse to get the byte.
//
// The XOR comparison itself is delegated to aislib.Nmea183ChecksumCheck,
// the same call the original nmeais.ParseSentence makes; this function adds
// the hex-to-byte parse that callers of this codec need but aislib's bare
// bool doesn't give them.
func VerifyChecksum(line []byte) (CheckedSentence, error) {
	star := lastByteIndex(line, '*')
	if star == -1 || star+3 > len(line) {
		return CheckedSentence{}, fmt.Errorf("checksum: no '*HH' suffix in %q", line)
	}
	bang := firstByteIndex(line, '!')
	if bang == -1 || bang >= star {
		return CheckedSentence{}, fmt.Errorf("checksum: no '!' before '*' in %q", line)
	}
	hi, ok1 := hexDigit(line[star+1])
	lo, ok2 := hexDigit(line[star+2])
	if !ok1 || !ok2 {
		return CheckedSentence{}, fmt.Errorf("checksum: %q is not two hex digits", line[star+1:star+3])
	}
	parsed := hi<<4 | lo
	valid := ais.Nmea183ChecksumCheck(string(line[bang : star+3]))
	return CheckedSentence{Valid: valid, Checksum: parsed}, nil
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	default:
		return 0, false
	}
}

func firstByteIndex(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func lastByteIndex(b []byte, c byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == c {
			return i
		}
	}
	return -1
}

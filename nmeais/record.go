package nmeais

import (
	"fmt"

	"github.com/tormol/aisvdm/wire"
)

// EncodeSentence transcodes one AIVDM/AIVDO line into the smallest wire
// record that reproduces it exactly. It never returns an error: any failure
// to parse, validate, or round-trip the line falls back to a Raw record
// carrying the line verbatim, per the round-trip guard being the sole
// authority on whether a compact encoding is safe to emit (SPEC_FULL.md
// §4.5/§9 - not a debug aid).
func EncodeSentence(line string) *wire.Message {
	encoded, ok := tryEncodeSentence(line)
	if !ok {
		raw := line
		return &wire.Message{Raw: &raw}
	}
	return &wire.Message{Encoded: encoded}
}

func tryEncodeSentence(line string) (*wire.Encoded, bool) {
	checked, err := VerifyChecksum([]byte(line))
	if err != nil || !checked.Valid {
		return nil, false
	}
	s, err := ParseSentence(line)
	if err != nil {
		return nil, false
	}
	if s.Checksum != checked.Checksum {
		return nil, false
	}
	data, dropBits, garbageBits, err := UnpackArmor(s.Body, s.FillBits)
	if err != nil {
		return nil, false
	}
	metadata, err := PackMetadata(s.Talker, s.Length, s.Index, s.MessageID, s.Channel, dropBits, garbageBits, s.Checksum)
	if err != nil {
		return nil, false
	}
	encoded := &wire.Encoded{Metadata: uint64(metadata), Body: data}

	// The round-trip guard: reject the compact encoding unless replaying it
	// through DecodeEncoded reproduces the exact input line. This is what
	// makes the fallback-to-Raw path correct instead of merely convenient.
	replayed, err := DecodeEncoded(encoded)
	if err != nil || replayed != line {
		return nil, false
	}
	return encoded, true
}

// DecodeEncoded reconstructs the original sentence line from an Encoded
// record. It's also used internally by EncodeSentence's round-trip guard.
func DecodeEncoded(e *wire.Encoded) (string, error) {
	m := Metadata(e.Metadata)
	talker, err := m.Talker()
	if err != nil {
		return "", fmt.Errorf("nmeais: decode: %w", err)
	}
	channel, err := m.Channel()
	if err != nil {
		return "", fmt.Errorf("nmeais: decode: %w", err)
	}
	armor, fillBits, err := PackArmor(e.Body, m.DropBits(), m.GarbageBits())
	if err != nil {
		return "", fmt.Errorf("nmeais: decode: %w", err)
	}
	s := Sentence{
		Talker:    talker,
		Length:    m.Length(),
		Index:     m.Index(),
		MessageID: m.MessageID(),
		Channel:   channel,
		Body:      armor,
		FillBits:  fillBits,
		Checksum:  m.Checksum(),
	}
	line := s.Print()
	// Re-verify the checksum over the reconstructed line: metadata.Checksum
	// is attacker/corruption-controlled wire input, and a mismatch here means
	// the record doesn't actually describe a valid sentence. Mirrors the
	// Repeat path's check in dedup.go's DecompressMessage.
	checked, err := VerifyChecksum([]byte(line))
	if err != nil {
		return "", fmt.Errorf("nmeais: decode: reconstructed line %q: %w", line, err)
	}
	if !checked.Valid {
		return "", fmt.Errorf("nmeais: decode: reconstructed line %q has an invalid checksum", line)
	}
	return line, nil
}

// DecodeMessage reconstructs the original line from a Raw or Encoded
// message. Repeat messages aren't handled here: resolving a back-reference
// needs access to the sliding dedup window, so that's Deduplicator's job
// (see dedup.go).
func DecodeMessage(m *wire.Message) (string, error) {
	switch {
	case m.Raw != nil:
		return *m.Raw, nil
	case m.Encoded != nil:
		return DecodeEncoded(m.Encoded)
	default:
		return "", fmt.Errorf("nmeais: DecodeMessage: not a Raw or Encoded message")
	}
}

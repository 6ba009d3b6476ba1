package nmeais

import "fmt"

// TalkerID is the two-letter code identifying the originating device class
// of an AIVDM/AIVDO sentence. It's a small closed set, stored in 4 bits of
// the packed Metadata word.
type TalkerID uint8

// The ten talker IDs the wire format recognizes.
const (
	TalkerAB TalkerID = iota
	TalkerAD
	TalkerAI
	TalkerAN
	TalkerAR
	TalkerAS
	TalkerAT
	TalkerAX
	TalkerBS
	TalkerSA
)

var talkerNames = [...]string{"AB", "AD", "AI", "AN", "AR", "AS", "AT", "AX", "BS", "SA"}

func (t TalkerID) String() string {
	if int(t) < len(talkerNames) {
		return talkerNames[t]
	}
	return fmt.Sprintf("TalkerID(%d)", uint8(t))
}

// ParseTalkerID maps a two-letter code to its TalkerID, or reports an error
// for anything outside the closed set.
func ParseTalkerID(s string) (TalkerID, error) {
	for i, name := range talkerNames {
		if name == s {
			return TalkerID(i), nil
		}
	}
	return 0, fmt.Errorf("nmeais: unrecognized talker %q", s)
}

// ChannelCode is the AIS VHF channel a sentence was (or claims to be)
// received on. Missing is printed as an empty field.
type ChannelCode uint8

// The five channel values the wire format recognizes.
const (
	ChannelMissing ChannelCode = iota
	ChannelA
	ChannelB
	ChannelC1 // printed as "1"
	ChannelC2 // printed as "2"
)

func (c ChannelCode) String() string {
	switch c {
	case ChannelMissing:
		return ""
	case ChannelA:
		return "A"
	case ChannelB:
		return "B"
	case ChannelC1:
		return "1"
	case ChannelC2:
		return "2"
	default:
		return fmt.Sprintf("ChannelCode(%d)", uint8(c))
	}
}

// ParseChannelCode maps a single printed channel character (or "" for
// Missing) to its ChannelCode.
func ParseChannelCode(s string) (ChannelCode, error) {
	switch s {
	case "":
		return ChannelMissing, nil
	case "A":
		return ChannelA, nil
	case "B":
		return ChannelB, nil
	case "1":
		return ChannelC1, nil
	case "2":
		return ChannelC2, nil
	default:
		return 0, fmt.Errorf("nmeais: unrecognized channel %q", s)
	}
}

// AbsentMessageID is the sentinel stored in Metadata.MessageID when a
// sentence's message_id field was empty. 0xff is used rather than 0 because
// ParseSentence rejects a message_id field of "255", so unlike 0 it never
// stands for a real id (see SPEC_FULL.md, "absent-message_id sentinel").
const AbsentMessageID uint8 = 0xff

// Metadata is the 64-bit packed word carried by an Encoded record. Bit
// layout, from the MSB down: talker(4) length(8) index(8) message_id(8)
// channel(3) drop_bits(3) garbage_bits(8) checksum(8) reserved(14).
//
// Field accessors read/write through shift-and-mask, matching the layout
// table in SPEC_FULL.md §3; there is no bitfield library in this codebase's
// lineage that covers an arbitrary-width fixed word, so this is hand-rolled
// per the spec's own suggestion.
type Metadata uint64

const (
	talkerWidth      = 4
	lengthWidth      = 8
	indexWidth       = 8
	messageIDWidth   = 8
	channelWidth     = 3
	dropBitsWidth    = 3
	garbageBitsWidth = 8
	checksumWidth    = 8

	talkerShift      = 64 - talkerWidth
	lengthShift      = talkerShift - lengthWidth
	indexShift       = lengthShift - indexWidth
	messageIDShift   = indexShift - messageIDWidth
	channelShift     = messageIDShift - channelWidth
	dropBitsShift    = channelShift - dropBitsWidth
	garbageBitsShift = dropBitsShift - garbageBitsWidth
	checksumShift    = garbageBitsShift - checksumWidth
)

func maskOf(width uint) uint64 { return 1<<width - 1 }

// PackMetadata assembles the 64-bit metadata word from its fields.
func PackMetadata(talker TalkerID, length, index, messageID uint8, channel ChannelCode, dropBits uint8, garbageBits uint8, checksum uint8) (Metadata, error) {
	if uint64(talker) > maskOf(talkerWidth) {
		return 0, fmt.Errorf("nmeais: talker %d doesn't fit in %d bits", talker, talkerWidth)
	}
	if uint64(channel) > maskOf(channelWidth) {
		return 0, fmt.Errorf("nmeais: channel %d doesn't fit in %d bits", channel, channelWidth)
	}
	if dropBits > 7 {
		return 0, fmt.Errorf("nmeais: drop_bits %d out of range 0..=7", dropBits)
	}
	var m uint64
	m |= uint64(talker) << talkerShift
	m |= uint64(length) << lengthShift
	m |= uint64(index) << indexShift
	m |= uint64(messageID) << messageIDShift
	m |= uint64(channel) << channelShift
	m |= uint64(dropBits) << dropBitsShift
	m |= uint64(garbageBits) << garbageBitsShift
	m |= uint64(checksum) << checksumShift
	return Metadata(m), nil
}

// Talker returns the talker field, or an error if the stored value is
// outside the closed 10-value enum (a corrupt or foreign record).
func (m Metadata) Talker() (TalkerID, error) {
	v := uint64(m) >> talkerShift & maskOf(talkerWidth)
	if v >= uint64(len(talkerNames)) {
		return 0, fmt.Errorf("nmeais: metadata talker value %d is not a valid TalkerID", v)
	}
	return TalkerID(v), nil
}

// Length returns the fragment-count field.
func (m Metadata) Length() uint8 {
	return uint8(uint64(m) >> lengthShift & maskOf(lengthWidth))
}

// Index returns the fragment-index field.
func (m Metadata) Index() uint8 {
	return uint8(uint64(m) >> indexShift & maskOf(indexWidth))
}

// MessageID returns the sequence-id field (AbsentMessageID if absent).
func (m Metadata) MessageID() uint8 {
	return uint8(uint64(m) >> messageIDShift & maskOf(messageIDWidth))
}

// Channel returns the channel field, or an error if the stored value is
// outside the closed 5-value enum.
func (m Metadata) Channel() (ChannelCode, error) {
	v := uint64(m) >> channelShift & maskOf(channelWidth)
	if v > uint64(ChannelC2) {
		return 0, fmt.Errorf("nmeais: metadata channel value %d is not a valid ChannelCode", v)
	}
	return ChannelCode(v), nil
}

// DropBits returns the unpacker-side padding-bit count (0..=7).
func (m Metadata) DropBits() uint8 {
	return uint8(uint64(m) >> dropBitsShift & maskOf(dropBitsWidth))
}

// GarbageBits returns the preserved low-order bits of the armor's final
// character.
func (m Metadata) GarbageBits() uint8 {
	return uint8(uint64(m) >> garbageBitsShift & maskOf(garbageBitsWidth))
}

// Checksum returns the original sentence's XOR checksum byte.
func (m Metadata) Checksum() uint8 {
	return uint8(uint64(m) >> checksumShift & maskOf(checksumWidth))
}

// Metadata stores drop_bits rather than fill_bits because that's the value
// PackArmor consumes directly; reconstructing a sentence's fill_bits is a
// side effect of calling PackArmor on the decompress path, so no separate
// derivation helper is needed here (see SPEC_FULL.md §4.4).

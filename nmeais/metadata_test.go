package nmeais

import "testing"

func TestMetadataRoundTrip(t *testing.T) {
	cases := []struct {
		talker                          TalkerID
		length, index, messageID        uint8
		channel                         ChannelCode
		dropBits, garbageBits, checksum uint8
	}{
		{TalkerAI, 1, 1, AbsentMessageID, ChannelA, 0, 0, 0x23},
		{TalkerBS, 2, 2, 7, ChannelB, 7, 255, 0x39},
		{TalkerSA, 255, 255, 254, ChannelC2, 5, 128, 0xFF},
	}
	for _, c := range cases {
		m, err := PackMetadata(c.talker, c.length, c.index, c.messageID, c.channel, c.dropBits, c.garbageBits, c.checksum)
		if err != nil {
			t.Fatalf("PackMetadata: %s", err)
		}
		talker, err := m.Talker()
		if err != nil || talker != c.talker {
			t.Errorf("Talker(): got (%v, %v), want %v", talker, err, c.talker)
		}
		if m.Length() != c.length {
			t.Errorf("Length(): got %d, want %d", m.Length(), c.length)
		}
		if m.Index() != c.index {
			t.Errorf("Index(): got %d, want %d", m.Index(), c.index)
		}
		if m.MessageID() != c.messageID {
			t.Errorf("MessageID(): got %d, want %d", m.MessageID(), c.messageID)
		}
		channel, err := m.Channel()
		if err != nil || channel != c.channel {
			t.Errorf("Channel(): got (%v, %v), want %v", channel, err, c.channel)
		}
		if m.DropBits() != c.dropBits {
			t.Errorf("DropBits(): got %d, want %d", m.DropBits(), c.dropBits)
		}
		if m.GarbageBits() != c.garbageBits {
			t.Errorf("GarbageBits(): got %d, want %d", m.GarbageBits(), c.garbageBits)
		}
		if m.Checksum() != c.checksum {
			t.Errorf("Checksum(): got %d, want %d", m.Checksum(), c.checksum)
		}
	}
}

func TestPackMetadataRejectsOutOfRangeDropBits(t *testing.T) {
	if _, err := PackMetadata(TalkerAI, 0, 0, 0, ChannelMissing, 8, 0, 0); err == nil {
		t.Error("expected drop_bits=8 to be rejected")
	}
}

func TestMetadataChannelErrorOnReservedValue(t *testing.T) {
	// Manually construct a word with a channel field value outside the
	// 5-value enum to exercise the corrupt-word error path.
	m := Metadata(uint64(7) << channelShift)
	if _, err := m.Channel(); err == nil {
		t.Error("expected an error for an out-of-range channel field")
	}
}

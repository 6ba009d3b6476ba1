package nmeais

import "testing"

var wellFormedSentences = []string{
	"!AIVDM,1,1,,A,13HOI:0P0000VOHLCnHQKwvL05Ip,0*23",
	"!AIVDM,2,1,1,B,53cjbg00?ImDTs;;;J0l4Tr22222222222222209000,0*51",
	"!AIVDM,1,1,,A,802R5Ph0BkDhjPF?qRGbOwwwwwwwwwww2wwwwwwwwwwwwwwwwwwwwwwwwww,2*3B",
	"!AIVDM,2,2,0,A,@20,4*50",
	"!BSVDM,1,1,,A,14S:Eb001ePRmHBTAAFnrmV60PRk,0*1F",
	"!BSVDM,2,2,7,B,00000000000,2*39",
}

func TestParseSentencePrintRoundTrip(t *testing.T) {
	for _, line := range wellFormedSentences {
		s, err := ParseSentence(line)
		if err != nil {
			t.Errorf("%q: unexpected parse error: %s", line, err)
			continue
		}
		if got := s.Print(); got != line {
			t.Errorf("round trip: got %q, want %q", got, line)
		}
	}
}

func TestParseSentenceAbsentMessageID(t *testing.T) {
	line := "!AIVDM,1,1,,A,13HOI:0P0000VOHLCnHQKwvL05Ip,0*23"
	s, err := ParseSentence(line)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if s.MessageID != AbsentMessageID {
		t.Errorf("expected absent message_id sentinel, got %d", s.MessageID)
	}
}

func TestParseSentencePresentMessageID(t *testing.T) {
	line := "!AIVDM,2,1,1,B,53cjbg00?ImDTs;;;J0l4Tr22222222222222209000,0*51"
	s, err := ParseSentence(line)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if s.MessageID != 1 {
		t.Errorf("got message_id %d, want 1", s.MessageID)
	}
}

func TestParseSentenceInvalidFillBits(t *testing.T) {
	// fill_bits digit '6' is outside the printable grammar's 0..=5 range.
	line := "!AIVDM,1,1,,2,601uEP19bi7P04810,6*5D"
	if _, err := ParseSentence(line); err == nil {
		t.Error("expected an error for fill_bits=6")
	}
}

func TestParseSentenceUnknownTalker(t *testing.T) {
	if _, err := ParseSentence("!ZZVDM,1,1,,A,14S:Eb001ePRmHBTAAFnrmV60PRk,0*1F"); err == nil {
		t.Error("expected an error for an unrecognized talker")
	}
}

func TestParseSentenceWrongFieldCount(t *testing.T) {
	if _, err := ParseSentence("!AIVDM,1,1,,A,body*23"); err == nil {
		t.Error("expected an error for a missing field")
	}
}

func TestParseSentenceMessageID255Rejected(t *testing.T) {
	// 255 is reserved for AbsentMessageID, so a "255" digit field is rejected.
	line := "!AIVDM,1,1,255,A,14S:Eb001ePRmHBTAAFnrmV60PRk,0*00"
	if _, err := ParseSentence(line); err == nil {
		t.Error("expected message_id=255 to be rejected")
	}
}

func TestChannelCodeRoundTrip(t *testing.T) {
	for _, c := range []ChannelCode{ChannelMissing, ChannelA, ChannelB, ChannelC1, ChannelC2} {
		parsed, err := ParseChannelCode(c.String())
		if err != nil || parsed != c {
			t.Errorf("ChannelCode %d: round trip via %q failed: %v, %v", c, c.String(), parsed, err)
		}
	}
}

func TestTalkerIDRoundTrip(t *testing.T) {
	for _, tk := range []TalkerID{TalkerAB, TalkerAD, TalkerAI, TalkerAN, TalkerAR, TalkerAS, TalkerAT, TalkerAX, TalkerBS, TalkerSA} {
		parsed, err := ParseTalkerID(tk.String())
		if err != nil || parsed != tk {
			t.Errorf("TalkerID %d: round trip via %q failed: %v, %v", tk, tk.String(), parsed, err)
		}
	}
}

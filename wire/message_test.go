package wire

import "testing"

func TestHeaderMarshalUnmarshalRoundTrip(t *testing.T) {
	windowSize := uint32(512)
	h := &Header{Auth: &Auth{APIKey: "secret"}, WindowSize: &windowSize}
	got, err := UnmarshalHeader(h.Marshal(nil))
	if err != nil {
		t.Fatalf("UnmarshalHeader: %s", err)
	}
	if got.Auth == nil || got.Auth.APIKey != "secret" {
		t.Errorf("Auth: got %+v", got.Auth)
	}
	if got.WindowSize == nil || *got.WindowSize != windowSize {
		t.Errorf("WindowSize: got %+v", got.WindowSize)
	}
}

func TestHeaderMarshalUnmarshalEmpty(t *testing.T) {
	h := &Header{}
	got, err := UnmarshalHeader(h.Marshal(nil))
	if err != nil {
		t.Fatalf("UnmarshalHeader: %s", err)
	}
	if got.Auth != nil || got.WindowSize != nil {
		t.Errorf("expected an empty header, got %+v", got)
	}
}

func TestMessageMarshalUnmarshalRaw(t *testing.T) {
	line := "!AIVDM,1,1,,A,13HOI:0P0000VOHLCnHQKwvL05Ip,0*23"
	m := &Message{Raw: &line}
	got, err := UnmarshalMessage(m.Marshal(nil))
	if err != nil {
		t.Fatalf("UnmarshalMessage: %s", err)
	}
	if got.Raw == nil || *got.Raw != line {
		t.Errorf("got %+v", got)
	}
}

func TestMessageMarshalUnmarshalEncoded(t *testing.T) {
	m := &Message{Encoded: &Encoded{Metadata: 0x0123456789ABCDEF, Body: []byte{1, 2, 3, 4}}}
	got, err := UnmarshalMessage(m.Marshal(nil))
	if err != nil {
		t.Fatalf("UnmarshalMessage: %s", err)
	}
	if got.Encoded == nil || got.Encoded.Metadata != m.Encoded.Metadata {
		t.Errorf("Metadata: got %+v", got.Encoded)
	}
	if string(got.Encoded.Body) != string(m.Encoded.Body) {
		t.Errorf("Body: got %v, want %v", got.Encoded.Body, m.Encoded.Body)
	}
}

func TestMessageMarshalUnmarshalRepeat(t *testing.T) {
	m := &Message{Repeat: &Repeat{Index: 7, Checksum: 0x23}}
	got, err := UnmarshalMessage(m.Marshal(nil))
	if err != nil {
		t.Fatalf("UnmarshalMessage: %s", err)
	}
	if got.Repeat == nil || got.Repeat.Index != 7 || got.Repeat.Checksum != 0x23 {
		t.Errorf("got %+v", got.Repeat)
	}
}

func TestMessageMarshalPanicsWithNoVariant(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Marshal to panic on a Message with no variant set")
		}
	}()
	(&Message{}).Marshal(nil)
}

func TestUnmarshalMessageRejectsEmptyBytes(t *testing.T) {
	if _, err := UnmarshalMessage(nil); err == nil {
		t.Error("expected an error for a message with no variant set")
	}
}

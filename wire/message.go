// Package wire implements the length-delimited, protobuf-wire-compatible
// stream format the compressor and decompressor exchange: a Header record
// followed by any number of Message records.
//
// Rather than going through generated code, the field encodings are
// assembled directly against google.golang.org/protobuf/encoding/protowire,
// the low-level varint/tag/length-delimited primitives the generated
// marshalers themselves are built on. The wire bytes this package produces
// are exactly what a .proto schema matching the field table below would
// generate.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers. Keeping them named constants instead of magic numbers
// reads closer to a generated accessor table and keeps Marshal/Unmarshal in
// sync without a .proto file to cross-check against.
const (
	headerAuthField       = 1
	headerWindowSizeField = 2

	authAPIKeyField = 1

	messageRawField     = 1
	messageEncodedField = 2
	messageRepeatField  = 3

	encodedMetadataField = 1
	encodedBodyField     = 2

	repeatIndexField    = 1
	repeatChecksumField = 2
)

// Auth carries the optional API key transmitted in a stream's Header.
type Auth struct {
	APIKey string
}

// Header is the first record of every stream.
type Header struct {
	Auth       *Auth
	WindowSize *uint32
}

// Encoded is a losslessly re-encoded AIVDM/AIVDO sentence: the packed
// nmeais.Metadata word plus the unpacked armor payload.
type Encoded struct {
	Metadata uint64
	Body     []byte
}

// Repeat is a back-reference into the sliding dedup window: Index counts
// positions back from the current ring slot (1..=window size), Checksum is
// the original sentence's XOR checksum byte, widened to uint32 on the wire.
type Repeat struct {
	Index    uint32
	Checksum uint32
}

// Message is the tagged union carried by every record after the Header:
// exactly one of Raw, Encoded, or Repeat is set.
type Message struct {
	Raw     *string
	Encoded *Encoded
	Repeat  *Repeat
}

// Marshal appends h's wire encoding to b and returns the extended slice.
func (h *Header) Marshal(b []byte) []byte {
	if h.Auth != nil {
		sub := h.Auth.Marshal(nil)
		b = protowire.AppendTag(b, headerAuthField, protowire.BytesType)
		b = protowire.AppendBytes(b, sub)
	}
	if h.WindowSize != nil {
		b = protowire.AppendTag(b, headerWindowSizeField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*h.WindowSize))
	}
	return b
}

// UnmarshalHeader decodes a Header from b, which must contain exactly one
// encoded Header message (no trailing bytes).
func UnmarshalHeader(b []byte) (*Header, error) {
	h := &Header{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad header tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == headerAuthField && typ == protowire.BytesType:
			sub, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad header.auth: %w", protowire.ParseError(n))
			}
			b = b[n:]
			auth, err := unmarshalAuth(sub)
			if err != nil {
				return nil, err
			}
			h.Auth = auth
		case num == headerWindowSizeField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad header.window_size: %w", protowire.ParseError(n))
			}
			b = b[n:]
			ws := uint32(v)
			h.WindowSize = &ws
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad header field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return h, nil
}

// Marshal appends a's wire encoding to b.
func (a *Auth) Marshal(b []byte) []byte {
	if a.APIKey != "" {
		b = protowire.AppendTag(b, authAPIKeyField, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte(a.APIKey))
	}
	return b
}

func unmarshalAuth(b []byte) (*Auth, error) {
	a := &Auth{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad auth tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		if num == authAPIKeyField && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad auth.api_key: %w", protowire.ParseError(n))
			}
			b = b[n:]
			a.APIKey = string(v)
		} else {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad auth field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return a, nil
}

// Marshal appends e's wire encoding to b.
func (e *Encoded) Marshal(b []byte) []byte {
	b = protowire.AppendTag(b, encodedMetadataField, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, e.Metadata)
	b = protowire.AppendTag(b, encodedBodyField, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Body)
	return b
}

func unmarshalEncoded(b []byte) (*Encoded, error) {
	e := &Encoded{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad encoded tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == encodedMetadataField && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad encoded.metadata: %w", protowire.ParseError(n))
			}
			b = b[n:]
			e.Metadata = v
		case num == encodedBodyField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad encoded.body: %w", protowire.ParseError(n))
			}
			b = b[n:]
			e.Body = append([]byte(nil), v...)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad encoded field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return e, nil
}

// Marshal appends r's wire encoding to b.
func (r *Repeat) Marshal(b []byte) []byte {
	b = protowire.AppendTag(b, repeatIndexField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Index))
	b = protowire.AppendTag(b, repeatChecksumField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Checksum))
	return b
}

func unmarshalRepeat(b []byte) (*Repeat, error) {
	r := &Repeat{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad repeat tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == repeatIndexField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad repeat.index: %w", protowire.ParseError(n))
			}
			b = b[n:]
			r.Index = uint32(v)
		case num == repeatChecksumField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad repeat.checksum: %w", protowire.ParseError(n))
			}
			b = b[n:]
			r.Checksum = uint32(v)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad repeat field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return r, nil
}

// Marshal appends m's wire encoding to b. Exactly one of m.Raw, m.Encoded,
// m.Repeat must be set; Marshal panics otherwise, since it indicates a bug
// in the caller rather than bad input.
func (m *Message) Marshal(b []byte) []byte {
	switch {
	case m.Raw != nil:
		b = protowire.AppendTag(b, messageRawField, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte(*m.Raw))
	case m.Encoded != nil:
		sub := m.Encoded.Marshal(nil)
		b = protowire.AppendTag(b, messageEncodedField, protowire.BytesType)
		b = protowire.AppendBytes(b, sub)
	case m.Repeat != nil:
		sub := m.Repeat.Marshal(nil)
		b = protowire.AppendTag(b, messageRepeatField, protowire.BytesType)
		b = protowire.AppendBytes(b, sub)
	default:
		panic("wire: Message has no variant set")
	}
	return b
}

// UnmarshalMessage decodes a Message from b (no trailing bytes allowed).
func UnmarshalMessage(b []byte) (*Message, error) {
	m := &Message{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("wire: bad message tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == messageRawField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad message.raw: %w", protowire.ParseError(n))
			}
			b = b[n:]
			s := string(v)
			m.Raw = &s
		case num == messageEncodedField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad message.encoded: %w", protowire.ParseError(n))
			}
			b = b[n:]
			e, err := unmarshalEncoded(v)
			if err != nil {
				return nil, err
			}
			m.Encoded = e
		case num == messageRepeatField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad message.repeat: %w", protowire.ParseError(n))
			}
			b = b[n:]
			r, err := unmarshalRepeat(v)
			if err != nil {
				return nil, err
			}
			m.Repeat = r
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("wire: bad message field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if m.Raw == nil && m.Encoded == nil && m.Repeat == nil {
		return nil, fmt.Errorf("wire: message has no variant set")
	}
	return m, nil
}

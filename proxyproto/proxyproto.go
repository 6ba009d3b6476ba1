// Package proxyproto consumes (and discards) a PROXY protocol v1 or v2
// preamble from the front of a byte stream, the way a load balancer such as
// HAProxy prepends one ahead of the proxied connection's own bytes.
//
// Only consumption is implemented: ais-decompress's --proxy-header flag
// exists to let the framed record stream be piped through something that
// adds this preamble (e.g. socat relaying a PROXY-wrapped TCP connection
// onto stdin) without choking on the extra bytes. The conveyed source
// address is parsed only far enough to be skipped; the codec has no notion
// of network peers to hand it to.
package proxyproto

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// v2Signature is the fixed 12-byte signature that opens every v2 header.
var v2Signature = []byte{0x0D, 0x0A, 0x0D, 0x0A, 0x00, 0x0D, 0x0A, 0x51, 0x55, 0x49, 0x54, 0x0A}

const v1Prefix = "PROXY "

// maxV1HeaderLen bounds how far Consume will scan looking for the v1
// header's terminating "\r\n" before giving up. The v1 spec itself caps a
// header line at 107 bytes including the trailing CRLF.
const maxV1HeaderLen = 107

// Consume reads and discards one PROXY protocol preamble from r, detecting
// v1 (text) vs v2 (binary) by its leading bytes. It returns an error if r
// doesn't start with a recognizable preamble at all, so callers that only
// expect a preamble when instructed to (e.g. via --proxy-header) shouldn't
// call this speculatively.
func Consume(r *bufio.Reader) error {
	head, err := r.Peek(len(v2Signature))
	if err == nil && bytes.Equal(head, v2Signature) {
		return consumeV2(r)
	}
	prefix, err := r.Peek(len(v1Prefix))
	if err == nil && string(prefix) == v1Prefix {
		return consumeV1(r)
	}
	return fmt.Errorf("proxyproto: stream does not start with a PROXY protocol v1 or v2 preamble")
}

// consumeV1 reads up to and including the "\r\n" terminating a v1 text
// header, e.g. "PROXY TCP4 192.168.1.1 192.168.1.2 56324 443\r\n".
func consumeV1(r *bufio.Reader) error {
	var line []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("proxyproto: reading v1 header: %w", err)
		}
		line = append(line, b)
		if len(line) >= 2 && line[len(line)-2] == '\r' && line[len(line)-1] == '\n' {
			return nil
		}
		if len(line) > maxV1HeaderLen {
			return fmt.Errorf("proxyproto: v1 header exceeds %d bytes without a terminating CRLF", maxV1HeaderLen)
		}
	}
}

// consumeV2 reads the fixed 16-byte v2 header (signature + ver/cmd +
// fam/proto + big-endian u16 address-block length) and then discards
// exactly that many address-block bytes.
func consumeV2(r *bufio.Reader) error {
	header := make([]byte, 16)
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("proxyproto: reading v2 header: %w", err)
	}
	verCmd := header[12]
	if verCmd>>4 != 2 {
		return fmt.Errorf("proxyproto: unsupported v2 version %d", verCmd>>4)
	}
	addrLen := binary.BigEndian.Uint16(header[14:16])
	if addrLen > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(addrLen)); err != nil {
			return fmt.Errorf("proxyproto: reading v2 address block: %w", err)
		}
	}
	return nil
}

package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// maxRecordSize bounds a single framed record so a corrupt or hostile
// length prefix can't make ReadDelimited try to allocate an unreasonable
// amount of memory. AIS sentences top out well under 100 bytes; this
// leaves generous headroom for the protobuf framing overhead.
const maxRecordSize = 1 << 20

// WriteDelimited writes payload prefixed with its length as a protobuf-style
// unsigned varint, the same representation protobuf itself uses for varint
// fields (golang.org/x/protobuf's length-delimited stream convention).
func WriteDelimited(w io.Writer, payload []byte) error {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(payload)))
	if _, err := w.Write(lenBuf[:n]); err != nil {
		return fmt.Errorf("wire: writing length prefix: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("wire: writing record: %w", err)
	}
	return nil
}

// ReadDelimited reads one varint-length-prefixed record from r. It returns
// io.EOF (unwrapped) only if the stream ends exactly at a record boundary;
// any other truncation is reported as an error, matching the "framing
// error: truncated/malformed varint" fatal policy.
func ReadDelimited(r *bufio.Reader) ([]byte, error) {
	length, err := binary.ReadUvarint(r)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("wire: reading length prefix: %w", err)
	}
	if length > maxRecordSize {
		return nil, fmt.Errorf("wire: record length %d exceeds maximum %d", length, maxRecordSize)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("wire: reading %d-byte record: %w", length, err)
	}
	return buf, nil
}

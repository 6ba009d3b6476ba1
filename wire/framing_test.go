package wire

import (
	"bufio"
	"bytes"
	"io"
	"testing"
)

func TestWriteReadDelimitedRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	records := [][]byte{{}, []byte("a"), bytes.Repeat([]byte{0xAB}, 300)}
	for _, r := range records {
		if err := WriteDelimited(&buf, r); err != nil {
			t.Fatalf("WriteDelimited: %s", err)
		}
	}
	r := bufio.NewReader(&buf)
	for i, want := range records {
		got, err := ReadDelimited(r)
		if err != nil {
			t.Fatalf("record %d: ReadDelimited: %s", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("record %d: got %v, want %v", i, got, want)
		}
	}
	if _, err := ReadDelimited(r); err != io.EOF {
		t.Errorf("expected io.EOF at stream end, got %v", err)
	}
}

func TestReadDelimitedTruncatedIsError(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDelimited(&buf, []byte("hello world")); err != nil {
		t.Fatalf("WriteDelimited: %s", err)
	}
	truncated := buf.Bytes()[:buf.Len()-3]
	r := bufio.NewReader(bytes.NewReader(truncated))
	if _, err := ReadDelimited(r); err == nil {
		t.Error("expected an error reading a truncated record")
	}
}

func TestReadDelimitedRejectsOversizedLength(t *testing.T) {
	var lenBuf [10]byte
	n := putUvarintOverLimit(lenBuf[:])
	r := bufio.NewReader(bytes.NewReader(lenBuf[:n]))
	if _, err := ReadDelimited(r); err == nil {
		t.Error("expected an error for a length prefix over the maximum record size")
	}
}

func putUvarintOverLimit(b []byte) int {
	// Encode a length comfortably larger than maxRecordSize.
	v := uint64(maxRecordSize) + 1
	i := 0
	for v >= 0x80 {
		b[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	b[i] = byte(v)
	return i + 1
}

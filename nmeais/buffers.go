package nmeais

// Splits raw stdin reads into complete AIVDM/AIVDO sentences. Only '!' is
// recognized as a sentence start (AIS traffic never uses the '$' talker
// sentences other NMEA-0183 consumers look for), which keeps this usable
// directly against the byte stream ais-compress reads without a
// line-oriented Scanner in between.
import (
	"bytes"
)

// FirstSentenceInBuffer extracts the first complete AIVDM/AIVDO sentence
// found in bufferSlice, reassembling it with whatever partial sentence
// carried over from a previous read in incomplete.
// `next` is the index of the first byte of bufferSlice that wasn't copied
// into copiedSentence; it equals len(bufferSlice) if every byte was
// consumed. Bytes before the first '!' are treated as noise and skipped.
// copiedSentence is always a fresh copy, safe to keep after bufferSlice is
// reused for the next read, and is guaranteed to end in "\r\n" once next is
// not -1 (a bare "\n" terminator is normalized to "\r\n").
// If bufferSlice doesn't hold a complete sentence yet, copiedSentence is the
// accumulated partial data and next is -1; pass that back in as incomplete
// on the next call. If bufferSlice doesn't even contain a '!', ("", -1) is
// returned instead of an empty copiedSentence paired with a positive next.
func FirstSentenceInBuffer(incomplete, bufferSlice []byte) (copiedSentence []byte, next int) {
	next = -1
	if len(incomplete) == 0 {
		start := bytes.IndexByte(bufferSlice, '!')
		if start == -1 {
			return []byte{}, -1
		}
		if start > 0 {
			// next must count the skipped noise bytes too
			copied, n := FirstSentenceInBuffer(incomplete, bufferSlice[start:])
			if n != -1 {
				n += start
			}
			return copied, n
		}
		bufferSlice = bufferSlice[start:]
		// search for the following sentence's start past the '!' at index 0
		nextm1 := bytes.IndexByte(bufferSlice[1:], '!') // next minus one
		if nextm1 != -1 {
			next = nextm1 + 1
		}
	} else {
		// Still check for a new '!': if the source reconnected mid-sentence
		// it may have started a fresh one instead of completing the old.
		// incomplete might simply have been missing its newline, so it's
		// returned regardless — even though it will likely fail to parse.
		next = bytes.IndexByte(bufferSlice, '!')
	}

	end := bytes.IndexByte(bufferSlice, '\n')

	if next == -1 && end == -1 { // incomplete sentence
		return append(incomplete, bufferSlice...), -1
	} else if end == -1 || (next != -1 && next < end) { // no newline before next sentence
		// cpy = copy but not a builtin
		cpy := reserveCapacity(incomplete, next+2)
		cpy = append(cpy, bufferSlice[:next]...)
		cpy = append(cpy, '\r', '\n')
		return cpy, next
	} else if (end != 0 && bufferSlice[end-1] == '\r') ||
		(end == 0 && len(incomplete) != 0 && incomplete[len(incomplete)-1] == '\r') {
		return append(incomplete, bufferSlice[:end+1]...), end + 1 // Both \r and \n
	} else { // only \n, normalize to \r\n for consistency
		cpy := reserveCapacity(incomplete, end+2)
		cpy = append(cpy, bufferSlice[:end]...)
		cpy = append(cpy, '\r', '\n')
		return cpy, end + 1 // consume the newline even though it wasn't used
	}
}

func reserveCapacity(b []byte, add int) []byte {
	if cap(b) >= len(b)+add {
		return b
	}
	return append(make([]byte, 0, len(b)+add), b...)
}

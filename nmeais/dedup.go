package nmeais

import (
	"fmt"

	"github.com/tormol/aisvdm/wire"
)

// Deduplicator is a sliding window of the most recently seen sentence lines,
// indexed by distance rather than by a time bucket: a duplicate is reported
// as "N records back", not "seen within the last T seconds". This lets the
// decompressor reconstruct an identical window purely by replaying the same
// sequence of Push calls, with no clock involved.
type Deduplicator struct {
	windowSize int
	ring       []string
	seen       map[string]int // line -> absolute sequence number of its last occurrence
	pos        int            // next ring slot to write
	count      int            // entries written so far, capped at windowSize
	seq        int            // absolute sequence number of the next Push
}

// NewDeduplicator builds a window holding up to windowSize lines. A
// windowSize of 0 disables deduplication entirely: FindDuplicate never
// matches and Push is a no-op.
func NewDeduplicator(windowSize int) *Deduplicator {
	return &Deduplicator{
		windowSize: windowSize,
		ring:       make([]string, windowSize),
		seen:       make(map[string]int),
	}
}

// FindDuplicate reports whether line exactly matches an entry currently
// inside the window, and if so how many positions back it sits (1 is the
// immediately preceding line). It does not mutate the window; call Push
// separately once the caller has decided how to record line.
func (d *Deduplicator) FindDuplicate(line string) (distanceBack uint32, ok bool) {
	if d.windowSize == 0 {
		return 0, false
	}
	lastSeq, present := d.seen[line]
	if !present {
		return 0, false
	}
	dist := d.seq - lastSeq
	if dist < 1 || dist > d.windowSize {
		return 0, false
	}
	return uint32(dist), true
}

// Resolve looks up the line sitting distanceBack positions behind the
// current write position. It's the decompress-side counterpart to
// FindDuplicate: given a Repeat record's Index, it recovers the text.
func (d *Deduplicator) Resolve(distanceBack uint32) (string, bool) {
	if d.windowSize == 0 || distanceBack < 1 || int(distanceBack) > d.windowSize || int(distanceBack) > d.count {
		return "", false
	}
	idx := ((d.pos-int(distanceBack))%d.windowSize + d.windowSize) % d.windowSize
	return d.ring[idx], true
}

// Push records line as the newest entry in the window, evicting whichever
// entry falls out the back.
func (d *Deduplicator) Push(line string) {
	if d.windowSize == 0 {
		return
	}
	if d.count == d.windowSize {
		evicted := d.ring[d.pos]
		evictedSeq := d.seq - d.windowSize
		// Only clear the map entry if it still points at the occurrence
		// being evicted: a more recent duplicate of the same line may have
		// already overwritten it with a newer sequence number.
		if s, ok := d.seen[evicted]; ok && s == evictedSeq {
			delete(d.seen, evicted)
		}
	}
	d.ring[d.pos] = line
	d.seen[line] = d.seq
	d.pos = (d.pos + 1) % d.windowSize
	d.seq++
	if d.count < d.windowSize {
		d.count++
	}
}

// CompressLine turns one input line into the smallest wire record the
// current window allows: a Repeat if line duplicates one already in the
// window (and a checksum can be extracted from it), otherwise whatever
// EncodeSentence produces. The line is always pushed onto the window
// afterward so later duplicates can reference it.
func CompressLine(d *Deduplicator, line string) *wire.Message {
	var msg *wire.Message
	if distance, ok := d.FindDuplicate(line); ok {
		if checked, err := VerifyChecksum([]byte(line)); err == nil {
			msg = &wire.Message{Repeat: &wire.Repeat{Index: distance, Checksum: uint32(checked.Checksum)}}
		}
	}
	if msg == nil {
		msg = EncodeSentence(line)
	}
	d.Push(line)
	return msg
}

// DecompressMessage is CompressLine's inverse: it reconstructs the line a
// record represents and advances the window the same way the compressor
// did, so the two stay in lockstep. A Repeat whose checksum disagrees with
// the line actually stored at that distance indicates the two windows have
// desynchronized, which is reported as an error rather than silently
// trusting the stale reference.
func DecompressMessage(d *Deduplicator, m *wire.Message) (string, error) {
	if m.Repeat != nil {
		line, ok := d.Resolve(m.Repeat.Index)
		if !ok {
			return "", fmt.Errorf("nmeais: repeat references distance %d outside the window", m.Repeat.Index)
		}
		if checked, err := VerifyChecksum([]byte(line)); err == nil && uint32(checked.Checksum) != m.Repeat.Checksum {
			return "", fmt.Errorf("nmeais: repeat checksum %d doesn't match windowed line's checksum %d", m.Repeat.Checksum, checked.Checksum)
		}
		d.Push(line)
		return line, nil
	}
	line, err := DecodeMessage(m)
	if err != nil {
		return "", err
	}
	d.Push(line)
	return line, nil
}

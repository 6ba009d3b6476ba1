// Package nmeais parses, prints, and re-encodes AIVDM/AIVDO NMEA-0183
// sentences carrying AIS payloads, and transcodes them to and from the
// length-delimited records the wire package frames.
package nmeais

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentence holds the fields parsed out of a "!TTVDM,...,body,fill*HH"
// envelope. Body is a view into the line it was parsed from — it's only
// copied when a caller needs to keep it past the line's lifetime (e.g.
// placing it on the dedup ring).
type Sentence struct {
	Talker    TalkerID
	Length    uint8 // number of fragments
	Index     uint8 // 1-based fragment number
	MessageID uint8 // AbsentMessageID (0xff) if the field was empty
	Channel   ChannelCode
	Body      string // armor-encoded payload, not including surrounding commas
	FillBits  uint8  // 0..=5
	Checksum  uint8  // the parsed "*HH" byte
}

// ParseError reports which field failed to parse and at what byte offset,
// so a caller logging a fallback-to-raw decision has context without
// re-scanning the line.
type ParseError struct {
	Field string
	Pos   int
	Line  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("nmeais: invalid %s at offset %d in %q", e.Field, e.Pos, e.Line)
}

func parseErr(field string, pos int, line string) error {
	return &ParseError{Field: field, Pos: pos, Line: line}
}

// ParseSentence parses one "!TTVDM,length,index,msgid,channel,body,fill*HH"
// line. line must not include a trailing "\r\n" (strip it first, as
// FirstSentenceInBuffer's callers do). It validates every field's structure
// and range up front, so a returned Sentence always satisfies invariant S2
// from SPEC_FULL.md; malformed input is always a *ParseError, never a
// panic. The "*HH" checksum is parsed but not compared against the XOR of
// the line (invariant S1); VerifyChecksum does that.
func ParseSentence(line string) (Sentence, error) {
	if len(line) < 1 || line[0] != '!' {
		return Sentence{}, parseErr("start", 0, line)
	}
	star := strings.LastIndexByte(line, '*')
	if star == -1 || star+3 != len(line) {
		return Sentence{}, parseErr("checksum", len(line), line)
	}
	checksum, ok := parseHexByte(line[star+1], line[star+2])
	if !ok {
		return Sentence{}, parseErr("checksum", star+1, line)
	}

	// Split the body between '!' and '*' on commas. The grammar has exactly
	// 6 commas: after talker+"VDM", length, index, message_id, channel, body.
	fields := strings.Split(line[1:star], ",")
	if len(fields) != 7 {
		return Sentence{}, parseErr("field count", 1, line)
	}
	// pos[i] is the byte offset in line at which fields[i] starts.
	pos := []int{1, 0, 0, 0, 0, 0, 0}
	for i := 1; i < len(pos); i++ {
		pos[i] = pos[i-1] + len(fields[i-1]) + 1
	}

	const idSuffix = "VDM"
	if len(fields[0]) != 5 || fields[0][2:] != idSuffix {
		return Sentence{}, parseErr("talker", 1, line)
	}
	talker, err := ParseTalkerID(fields[0][:2])
	if err != nil {
		return Sentence{}, parseErr("talker", 1, line)
	}

	length, err := parseU8Digits(fields[1])
	if err != nil {
		return Sentence{}, parseErr("length", pos[1], line)
	}
	index, err := parseU8Digits(fields[2])
	if err != nil {
		return Sentence{}, parseErr("index", pos[2], line)
	}
	messageID := AbsentMessageID
	if fields[3] != "" {
		messageID, err = parseU8Digits(fields[3])
		if err != nil || messageID == AbsentMessageID {
			// message_id is meaningful over 0..=254; 255 is reserved for
			// "absent", so a digit field of "255" is rejected here.
			return Sentence{}, parseErr("message_id", pos[3], line)
		}
	}
	channel, err := ParseChannelCode(fields[4])
	if err != nil {
		return Sentence{}, parseErr("channel", pos[4], line)
	}
	body := fields[5]
	if len(body) < 1 {
		return Sentence{}, parseErr("body", pos[5], line)
	}
	for i := 0; i < len(body); i++ {
		if _, ok := decodeArmorChar(body[i]); !ok {
			return Sentence{}, parseErr("body", pos[5]+i, line)
		}
	}
	if len(fields[6]) != 1 || fields[6][0] < '0' || fields[6][0] > '5' {
		return Sentence{}, parseErr("fill_bits", pos[6], line)
	}
	fillBits := fields[6][0] - '0'

	return Sentence{
		Talker:    talker,
		Length:    length,
		Index:     index,
		MessageID: messageID,
		Channel:   channel,
		Body:      body,
		FillBits:  fillBits,
		Checksum:  checksum,
	}, nil
}

// Print formats s back into its canonical "!TTVDM,...*HH" form: numbers
// without leading zeros, the checksum as two uppercase hex digits, and an
// absent MessageID as an empty field. Print(s) is byte-identical to the
// parsed line when that line was itself in this canonical form (invariant
// S3); a line with e.g. leading zeros or a lowercase hex checksum parses
// fine but prints differently.
func (s Sentence) Print() string {
	var b strings.Builder
	b.WriteByte('!')
	b.WriteString(s.Talker.String())
	b.WriteString("VDM,")
	b.WriteString(strconv.Itoa(int(s.Length)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(s.Index)))
	b.WriteByte(',')
	if s.MessageID != AbsentMessageID {
		b.WriteString(strconv.Itoa(int(s.MessageID)))
	}
	b.WriteByte(',')
	b.WriteString(s.Channel.String())
	b.WriteByte(',')
	b.WriteString(s.Body)
	b.WriteByte(',')
	b.WriteByte('0' + s.FillBits)
	b.WriteByte('*')
	b.WriteString(fmt.Sprintf("%02X", s.Checksum))
	return b.String()
}

func parseU8Digits(s string) (uint8, error) {
	if s == "" {
		return 0, fmt.Errorf("empty digit field")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("not a digit: %q", s)
		}
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func parseHexByte(hi, lo byte) (uint8, bool) {
	h, ok1 := hexDigit(hi)
	l, ok2 := hexDigit(lo)
	if !ok1 || !ok2 {
		return 0, false
	}
	return h<<4 | l, true
}

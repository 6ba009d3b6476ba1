// Command ais-compress reads AIVDM/AIVDO NMEA-0183 sentences from stdin,
// one per line, and writes a length-delimited stream of compact records to
// stdout.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/tormol/aisvdm/logger"
	"github.com/tormol/aisvdm/nmeais"
	"github.com/tormol/aisvdm/wire"
)

type options struct {
	AuthCode   string `long:"auth-code" description:"API key transmitted in the stream header"`
	WindowSize uint32 `long:"window-size" default:"512" description:"sliding dedup window size, 0 disables dedup"`
}

// readChunkSize bounds a single stdin read; sentences that straddle two
// reads are reassembled by FirstSentenceInBuffer's incomplete-carry, the
// same way the teacher's PacketParser.Accept stitches packets back together.
const readChunkSize = 64 * 1024

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	log := logger.NewLogger(os.Stderr, logger.Info)
	defer log.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	header := &wire.Header{}
	if opts.AuthCode != "" {
		header.Auth = &wire.Auth{APIKey: opts.AuthCode}
	}
	windowSize := opts.WindowSize
	header.WindowSize = &windowSize
	if err := wire.WriteDelimited(out, header.Marshal(nil)); err != nil {
		log.Fatalf("writing header: %s", err)
	}

	var lines, rawCount, encodedCount, repeatCount, totalBytes uint64
	log.AddPeriodic("compress-stats", 2*time.Second, 2*time.Minute, func(l *logger.Logger, sinceLast time.Duration) {
		l.Compose(logger.Info).
			Uint64("lines", atomic.LoadUint64(&lines)).
			Uint64("raw", atomic.LoadUint64(&rawCount)).
			Uint64("encoded", atomic.LoadUint64(&encodedCount)).
			Uint64("repeat", atomic.LoadUint64(&repeatCount)).
			Str("read", logger.SiMultiple(atomic.LoadUint64(&totalBytes), 1024, 'M')+"B").
			Msg("compress stats")
	})

	dedup := nmeais.NewDeduplicator(int(windowSize))

	processLine := func(line string) {
		msg := nmeais.CompressLine(dedup, line)
		atomic.AddUint64(&lines, 1)
		switch {
		case msg.Raw != nil:
			atomic.AddUint64(&rawCount, 1)
			// Every Raw record here is a fallback: the compressor never
			// refuses a line, so this is the one diagnostic point for
			// parse/checksum/round-trip failures (SPEC_FULL.md §7).
			log.Compose(logger.Warning).Str("line", logger.Escape([]byte(line))).Msg("falling back to raw")
		case msg.Encoded != nil:
			atomic.AddUint64(&encodedCount, 1)
		case msg.Repeat != nil:
			atomic.AddUint64(&repeatCount, 1)
		}
		if err := wire.WriteDelimited(out, msg.Marshal(nil)); err != nil {
			log.Fatalf("writing record: %s", err)
		}
	}

	// Split the raw stdin byte stream into complete sentences the same way
	// the teacher's server/packet_parser.go splits packets: FirstSentenceInBuffer
	// carries a partial sentence across reads in `incomplete`.
	var incomplete []byte
	buf := make([]byte, readChunkSize)
	for {
		n, readErr := os.Stdin.Read(buf)
		if n > 0 {
			atomic.AddUint64(&totalBytes, uint64(n))
			if len(incomplete) == 0 && buf[0] != '!' {
				log.Compose(logger.Debug).Str("chunk", logger.Escape(buf[:n])).Msg("chunk doesn't start with '!'")
			}
			chunk := buf[:n]
			for len(chunk) != 0 {
				sentence, used := nmeais.FirstSentenceInBuffer(incomplete, chunk)
				if used == -1 {
					incomplete = sentence
					break
				}
				incomplete = nil
				if len(sentence) == 0 {
					chunk = chunk[used:]
					continue
				}
				processLine(strings.TrimRight(string(sentence), "\r\n"))
				chunk = chunk[used:]
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			log.Fatalf("reading stdin: %s", readErr)
		}
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "flushing stdout:", err)
		os.Exit(1)
	}
	log.RunAllPeriodic()
}

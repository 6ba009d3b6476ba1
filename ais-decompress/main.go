// Command ais-decompress reads the length-delimited record stream produced
// by ais-compress from stdin and writes the reconstructed AIVDM/AIVDO lines
// to stdout.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/tormol/aisvdm/logger"
	"github.com/tormol/aisvdm/nmeais"
	"github.com/tormol/aisvdm/proxyproto"
	"github.com/tormol/aisvdm/wire"
)

type options struct {
	AuthCode    string `long:"auth-code" description:"API key the stream header must carry; mismatch is fatal"`
	ProxyHeader bool   `long:"proxy-header" description:"consume a PROXY protocol v1/v2 preamble before the framed stream"`
}

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

	in := bufio.NewReader(os.Stdin)
	if opts.ProxyHeader {
		if err := proxyproto.Consume(in); err != nil {
			log.Fatalf("consuming PROXY protocol preamble: %s", err)
		}
	}

	headerBytes, err := wire.ReadDelimited(in)
	if err != nil {
		log.Fatalf("reading header: %s", err)
	}
	header, err := wire.UnmarshalHeader(headerBytes)
	if err != nil {
		log.Fatalf("parsing header: %s", err)
	}
	if opts.AuthCode != "" {
		if header.Auth == nil || header.Auth.APIKey != opts.AuthCode {
			log.Fatalf("auth mismatch: stream header did not carry the expected auth code")
		}
	}
	windowSize := uint32(512)
	if header.WindowSize != nil {
		windowSize = *header.WindowSize
	}
	dedup := nmeais.NewDeduplicator(int(windowSize))

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var records, rawCount, encodedCount, repeatCount uint64
	log.AddPeriodic("decompress-stats", 2*time.Second, 2*time.Minute, func(l *logger.Logger, sinceLast time.Duration) {
		l.Compose(logger.Info).
			Uint64("records", atomic.LoadUint64(&records)).
			Uint64("raw", atomic.LoadUint64(&rawCount)).
			Uint64("encoded", atomic.LoadUint64(&encodedCount)).
			Uint64("repeat", atomic.LoadUint64(&repeatCount)).
			Msg("decompress stats")
	})

	for {
		recordBytes, err := wire.ReadDelimited(in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.Fatalf("reading record: %s", err)
		}
		msg, err := wire.UnmarshalMessage(recordBytes)
		if err != nil {
			log.Fatalf("parsing record: %s", err)
		}
		atomic.AddUint64(&records, 1)
		switch {
		case msg.Raw != nil:
			atomic.AddUint64(&rawCount, 1)
		case msg.Encoded != nil:
			atomic.AddUint64(&encodedCount, 1)
		case msg.Repeat != nil:
			atomic.AddUint64(&repeatCount, 1)
		}
		line, err := nmeais.DecompressMessage(dedup, msg)
		if err != nil {
			log.Fatalf("decoding record: %s", err)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			log.Fatalf("writing stdout: %s", err)
		}
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "flushing stdout:", err)
		os.Exit(1)
	}
	log.RunAllPeriodic()
}

package main

import (
	"testing"

	flags "github.com/jessevdk/go-flags"
)

func TestOptionsDefaults(t *testing.T) {
	var opts options
	if _, err := flags.ParseArgs(&opts, []string{}); err != nil {
		t.Fatalf("ParseArgs: %s", err)
	}
	if opts.AuthCode != "" {
		t.Errorf("AuthCode default: got %q, want empty", opts.AuthCode)
	}
	if opts.WindowSize != 512 {
		t.Errorf("WindowSize default: got %d, want 512", opts.WindowSize)
	}
}

func TestOptionsFlags(t *testing.T) {
	var opts options
	args := []string{"--auth-code", "secret", "--window-size", "0"}
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		t.Fatalf("ParseArgs: %s", err)
	}
	if opts.AuthCode != "secret" {
		t.Errorf("AuthCode: got %q, want %q", opts.AuthCode, "secret")
	}
	if opts.WindowSize != 0 {
		t.Errorf("WindowSize: got %d, want 0", opts.WindowSize)
	}
}

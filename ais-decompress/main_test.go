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
	if opts.ProxyHeader {
		t.Error("ProxyHeader default: got true, want false")
	}
}

func TestOptionsFlags(t *testing.T) {
	var opts options
	args := []string{"--auth-code", "secret", "--proxy-header"}
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		t.Fatalf("ParseArgs: %s", err)
	}
	if opts.AuthCode != "secret" {
		t.Errorf("AuthCode: got %q, want %q", opts.AuthCode, "secret")
	}
	if !opts.ProxyHeader {
		t.Error("ProxyHeader: got false, want true")
	}
}

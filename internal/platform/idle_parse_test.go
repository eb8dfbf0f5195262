package platform

import (
	"testing"
	"time"
)

func TestParseIdleMillis(t *testing.T) {
	got, err := parseIdleMillis("1500\n")
	if err != nil {
		t.Fatalf("parseIdleMillis: %v", err)
	}
	if got != 1500*time.Millisecond {
		t.Fatalf("unexpected duration %v", got)
	}
	if _, err := parseIdleMillis("idle"); err == nil {
		t.Fatal("expected error for non-numeric output")
	}
}

func TestParseHIDIdleTime(t *testing.T) {
	output := `+-o IOHIDSystem  <class IOHIDSystem, id 0x100000443>
    {
      "HIDIdleTime" = 4200000000
      "HIDParameters" = {"HIDKeyRepeat"=83333333}
    }`
	got, err := parseHIDIdleTime(output)
	if err != nil {
		t.Fatalf("parseHIDIdleTime: %v", err)
	}
	if got != 4200*time.Millisecond {
		t.Fatalf("unexpected duration %v", got)
	}
	if _, err := parseHIDIdleTime("{}"); err == nil {
		t.Fatal("expected error when counter is missing")
	}
}

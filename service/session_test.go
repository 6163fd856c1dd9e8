package service

import (
	"errors"
	"testing"
	"time"
)

func TestNewScanConfigLiteralTarget(t *testing.T) {
	cfg, err := NewScanConfig("127.0.0.1", "22", 1000, 3, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IP != "127.0.0.1" {
		t.Fatalf("got IP %q, want 127.0.0.1", cfg.IP)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("got timeout %v, want 3s", cfg.Timeout)
	}
	if len(cfg.Ports) != 1 || cfg.Ports[0] != 22 {
		t.Fatalf("got ports %v, want [22]", cfg.Ports)
	}
}

func TestNewScanConfigIPv6Literal(t *testing.T) {
	cfg, err := NewScanConfig("::1", "80", 10, 1, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IP != "::1" {
		t.Fatalf("got IP %q, want ::1", cfg.IP)
	}
}

func TestNewScanConfigBadSpecFailsBeforeAnyProbe(t *testing.T) {
	_, err := NewScanConfig("127.0.0.1", "80-22", 1000, 3, 0, false)
	if err == nil {
		t.Fatal("expected an error for an inverted range")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestNewScanConfigRejectsZeroValues(t *testing.T) {
	if _, err := NewScanConfig("127.0.0.1", "22", 0, 3, 0, false); err == nil {
		t.Fatal("expected an error for zero concurrency")
	}
	if _, err := NewScanConfig("127.0.0.1", "22", 1, 0, 0, false); err == nil {
		t.Fatal("expected an error for zero timeout")
	}
	if _, err := NewScanConfig("", "22", 1, 3, 0, false); err == nil {
		t.Fatal("expected an error for an empty target")
	}
}

func TestNewScanConfigUnresolvableTarget(t *testing.T) {
	_, err := NewScanConfig("definitely-not-a-real-host.invalid", "22", 1, 3, 0, false)
	if err == nil {
		t.Fatal("expected a resolve error")
	}
}

func TestNewScanSessionIndependence(t *testing.T) {
	cfg, err := NewScanConfig("127.0.0.1", "22,80", 4, 3, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := NewScanSession(cfg)
	second := NewScanSession(cfg)
	if first.ID == "" || second.ID == "" {
		t.Fatal("expected non-empty session IDs")
	}
	if first.ID == second.ID {
		t.Fatalf("sessions share the ID %q", first.ID)
	}
	if first.sem == second.sem {
		t.Fatal("sessions share an admission semaphore")
	}
}

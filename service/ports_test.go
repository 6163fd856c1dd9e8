package service

import (
	"errors"
	"reflect"
	"testing"
)

func TestParsePortSpec(t *testing.T) {
	cases := map[string][]uint16{
		"22":              {22},
		"22,80":           {22, 80},
		"80,22":           {22, 80},
		"1-3":             {1, 2, 3},
		"8080-8080":       {8080},
		"22,80,8000-8002": {22, 80, 8000, 8001, 8002},
		"22,22,21-23":     {21, 22, 23},
		" 22 , 80 ":       {22, 80},
	}

	for spec, want := range cases {
		t.Run(spec, func(t *testing.T) {
			got, err := ParsePortSpec(spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %v, want %v", got, want)
			}
		})
	}
}

func TestParsePortSpecFullRange(t *testing.T) {
	got, err := ParsePortSpec("1-65535")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 65535 {
		t.Fatalf("got %d ports, want 65535", len(got))
	}
	if got[0] != 1 || got[len(got)-1] != 65535 {
		t.Fatalf("unexpected bounds %d..%d", got[0], got[len(got)-1])
	}
}

func TestParsePortSpecInvalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"0",
		"65536",
		"80-22",
		"abc",
		"22,",
		",80",
		"1-70000",
		"-",
		"8000-",
		"1-2-3",
	}

	for _, spec := range cases {
		t.Run(spec, func(t *testing.T) {
			got, err := ParsePortSpec(spec)
			if err == nil {
				t.Fatalf("expected error, got %v", got)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParsePortSpecErrorNamesToken(t *testing.T) {
	_, err := ParsePortSpec("22,80-22,443")

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Token != "80-22" {
		t.Fatalf("got token %q, want %q", perr.Token, "80-22")
	}
	if perr.Reason == "" {
		t.Fatal("expected a reason in the parse error")
	}
}

package bitarray

import (
	"bytes"
	"testing"
)

func TestFprintHex(t *testing.T) {
	b, err := FromHex("DEADBEEF")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := b.FprintHex(&buf, 4); err != nil {
		t.Fatalf("FprintHex failed: %v", err)
	}

	want := "D, E, A, D\nB, E, E, F\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFprintHex_SingleLine(t *testing.T) {
	b, err := FromHex("AB")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := b.FprintHex(&buf, 8); err != nil {
		t.Fatalf("FprintHex failed: %v", err)
	}

	if got := buf.String(); got != "A, B\n" {
		t.Errorf("got %q, want %q", got, "A, B\n")
	}
}

func TestFprintHex_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := New(0).FprintHex(&buf, 4); err != nil {
		t.Fatalf("FprintHex failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for an empty array, got %q", buf.String())
	}
}

func TestFprintBin(t *testing.T) {
	b, err := FromBin("0110")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := b.FprintBin(&buf, 2); err != nil {
		t.Fatalf("FprintBin failed: %v", err)
	}

	want := "0, 1\n1, 0\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFprintBin_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := New(0).FprintBin(&buf, 4); err != nil {
		t.Fatalf("FprintBin failed: %v", err)
	}
	if got := buf.String(); got != "\n" {
		t.Errorf("got %q, want %q", got, "\n")
	}
}

func TestFprint_ZeroPerLinePanics(t *testing.T) {
	defer func() {
		if _, ok := recover().(*PreconditionError); !ok {
			t.Fatalf("expected *PreconditionError panic")
		}
	}()

	var buf bytes.Buffer
	_ = New(8).FprintHex(&buf, 0)
}

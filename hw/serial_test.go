package hw

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSerialOutput(t *testing.T) {
	var out []byte
	s := NewSerialPort(func(b byte) { out = append(out, b) })

	for _, b := range []byte("hi\n") {
		s.Write8(0, b)
	}
	if diff := cmp.Diff([]byte("hi\n"), out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if got := s.Peek8(0); got != '\n' {
		t.Errorf("data = %02X, want last written byte", got)
	}
}

func TestSerialInput(t *testing.T) {
	s := NewSerialPort(nil)

	if got := s.Read8(1); got != 0 {
		t.Errorf("status = %02X, want 0", got)
	}

	s.SendInput('a')
	if got := s.Peek8(1); got != SerialRxFull {
		t.Errorf("status = %02X, want %02X", got, SerialRxFull)
	}
	if got := s.Read8(0); got != 'a' {
		t.Errorf("data = %02X, want %02X", got, 'a')
	}

	// Reading the data consumes it.
	if got := s.Read8(0); got != 0 {
		t.Errorf("data = %02X, want 0", got)
	}
	if got := s.Read8(1); got != 0 {
		t.Errorf("status = %02X, want 0", got)
	}
}

func TestSerialReset(t *testing.T) {
	s := NewSerialPort(nil)
	s.SendInput('z')
	s.Reset()
	if s.Peek8(0) != 0 || s.Peek8(1) != 0 {
		t.Errorf("mailbox not cleared by reset")
	}
}

func TestNullDevice(t *testing.T) {
	var d NullDevice
	d.Write8(0, 0xFF)
	d.Tick()
	if d.Read8(0) != 0 || d.Peek8(3) != 0 || d.IRQ() {
		t.Errorf("null device should read as 0 and never interrupt")
	}
}

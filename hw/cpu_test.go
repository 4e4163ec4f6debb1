package hw

import (
	"testing"

	"plu/hw/hwio"
)

func TestPflag(t *testing.T) {
	p := P(0x40)
	p = p.SetI(true)
	if p != 0x44 {
		t.Errorf("got P = %q, want %q", p.String(), P(0x44))
	}

	p = p.SetC(true).SetV(false)
	if p != 0x05 {
		t.Errorf("got P = %q, want %q", p.String(), P(0x05))
	}

	// Negative flag
	p.checkNZ(0xff)
	if !p.N() {
		t.Error("N bit should be set")
	}
	p.checkNZ(0x7f)
	if p.N() {
		t.Error("N bit should not be set")
	}

	// Zero flag
	p.checkNZ(0)
	if !p.Z() {
		t.Error("Z bit should be set")
	}
	p.checkNZ(1)
	if p.Z() {
		t.Error("Z bit should not be set")
	}

	// reserved bits are forced, the others are untouched.
	if p != 0x35 {
		t.Errorf("got P = %q, want %q", p.String(), P(0x35))
	}
}

func TestPString(t *testing.T) {
	p := P(0b00110100)
	if got := p.String(); got != "nvUBdIzc" {
		t.Errorf("got P = %s, want %s", got, "nvUBdIzc")
	}
	p = P(0b00000100)
	if p.String() != "nvubdIzc" {
		t.Errorf("got P = %s, want %s", p.String(), "nvubdIzc")
	}
}

func TestPowerUpAndReset(t *testing.T) {
	bus := hwio.NewTable("cpu")
	cpu := NewCPU(bus)

	if cpu.P != 0x30 || cpu.PC != 0x400 || cpu.Inst != 0xEA {
		t.Errorf("power-up state: P=%02X PC=%04X Inst=%02X", uint8(cpu.P), cpu.PC, cpu.Inst)
	}
	if cpu.A != 0 || cpu.X != 0 || cpu.Y != 0 || cpu.SP != 0 {
		t.Errorf("power-up registers: A=%02X X=%02X Y=%02X SP=%02X", cpu.A, cpu.X, cpu.Y, cpu.SP)
	}

	bus.Load(0xFFFC, []byte{0x34, 0x12})
	cpu.Clock = 1000
	cpu.A = 0x55
	cpu.Reset()

	if cpu.PC != 0x1234 {
		t.Errorf("PC = %04X, want 1234", cpu.PC)
	}
	if cpu.Clock != 0 {
		t.Errorf("clock = %d, want 0", cpu.Clock)
	}
	if cpu.A != 0x55 {
		t.Errorf("A = %02X, reset shouldn't modify it", cpu.A)
	}
}

func TestExecAdvancesPC(t *testing.T) {
	dump := `
0800: ea 0a a5 10 ad 00 20 03 02 ff 5c 00 00
fffc: 00 08`
	cpu := loadCPUWith(t, dump)

	// NOP; ASL A; LDA zp; LDA abs; 1 byte NOP; 2 bytes NOP; 3 bytes NOP.
	runAndCheckState(t, cpu, 1, "PC", uint16(0x0801), "clock", uint64(2))
	runAndCheckState(t, cpu, 1, "PC", uint16(0x0802), "clock", uint64(4))
	runAndCheckState(t, cpu, 1, "PC", uint16(0x0804), "clock", uint64(7))
	runAndCheckState(t, cpu, 1, "PC", uint16(0x0807), "clock", uint64(11))
	runAndCheckState(t, cpu, 1, "PC", uint16(0x0808), "clock", uint64(13))
	runAndCheckState(t, cpu, 1, "PC", uint16(0x080A), "clock", uint64(15))
	runAndCheckState(t, cpu, 1, "PC", uint16(0x080D), "clock", uint64(19))

	if cpu.Inst != 0x5C {
		t.Errorf("Inst = %02X, want 5C", cpu.Inst)
	}
}

func TestIRQ(t *testing.T) {
	// Program T1 for a single count, enable its interrupt then CLI.
	dump := `
0800: a9 01 8d c6 ff a9 00 8d c5 ff a9 c0 8d ce ff 58
0810: ea ea
0900: 40
fffc: 00 08 00 09`
	cpu := loadCPUWith(t, dump)
	if err := cpu.Bus.MapDevice(0xFFC0, 16, "via", NewTimerController()); err != nil {
		t.Fatal(err)
	}
	cpu.P = cpu.P.SetI(true)

	// The timer expires while interrupts are masked.
	runAndCheckState(t, cpu, 6, "PC", uint16(0x080F), "Pi", uint8(1))
	if !cpu.IRQLine {
		t.Fatalf("IRQ line should be asserted")
	}

	// CLI, then the interrupt is taken right away.
	runAndCheckState(t, cpu, 1,
		"PC", uint16(0x0900),
		"SP", uint8(0xFC),
		"Pi", uint8(1),
		"clock", uint64(27),
		"mem", "01fd: a0 10 08",
	)

	// RTI restores P (I clear) and the interrupted PC, the line is still
	// asserted so the interrupt is immediately taken again.
	runAndCheckState(t, cpu, 1, "PC", uint16(0x0900), "SP", uint8(0xFC))
}

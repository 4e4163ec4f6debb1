package hw

import (
	"plu/emu/log"
	"plu/hw/hwio"
)

//go:generate go tool stringer -type=DiskCommand -trimprefix=Disk -output=diskcommand_string.go

// SectorSize is the size of a disk block, in bytes.
const SectorSize = 512

type DiskCommand uint8

const (
	DiskNone DiskCommand = iota
	DiskRead
	DiskWrite
)

// Command codes written to the command register.
const (
	cmdReadSector  = 0x20
	cmdWriteSector = 0x30
)

// Status register values.
const (
	diskStatusIdle = 0x50
	diskStatusBusy = 0x58
)

// DiskController is a CompactFlash style block device. Its 8 registers are
// decoded by the 3 low address bits:
//
//	0    data port, transfers one byte of the current sector
//	1-2  unused, read back the last written value
//	3-6  logical block address, LSB first (only the low nibble of 6 is used)
//	7    command on write, status on read
type DiskController struct {
	Regs [8]hwio.Reg8

	lba     uint32
	counter int
	cmd     DiskCommand

	image []byte
	dirty bool
}

// NewDiskController creates a disk controller operating on image. An empty
// image means no disk is attached: all registers then read 0 and writes are
// ignored.
func NewDiskController(image []byte) *DiskController {
	d := &DiskController{image: image}
	d.Regs[0] = hwio.Reg8{
		Name:    "data",
		ReadCb:  d.readData,
		PeekCb:  d.peekData,
		WriteCb: d.writeData,
	}
	for i := 1; i <= 6; i++ {
		d.Regs[i].Name = "lba"
		if i >= 3 {
			d.Regs[i].WriteCb = d.writeLBA
		}
	}
	d.Regs[1].Name = "feature"
	d.Regs[2].Name = "count"
	d.Regs[7] = hwio.Reg8{
		Name:    "cmd",
		ReadCb:  d.status,
		PeekCb:  d.status,
		WriteCb: d.writeCommand,
	}
	return d
}

// Image returns the disk image, including the sectors written by the CPU.
func (d *DiskController) Image() []byte { return d.image }

// Dirty reports whether the CPU wrote to the disk.
func (d *DiskController) Dirty() bool { return d.dirty }

// Command returns the current command.
func (d *DiskController) Command() DiskCommand { return d.cmd }

// LBA returns the current logical block address.
func (d *DiskController) LBA() uint32 { return d.lba }

func (d *DiskController) Reset() {
	for i := range d.Regs {
		d.Regs[i].Reset()
	}
	d.lba = 0
	d.counter = 0
	d.cmd = DiskNone
}

func (d *DiskController) writeLBA(_, _ uint8) {
	d.lba = uint32(d.Regs[3].Value) |
		uint32(d.Regs[4].Value)<<8 |
		uint32(d.Regs[5].Value)<<16 |
		uint32(d.Regs[6].Value&0x0F)<<24
}

func (d *DiskController) writeCommand(_, val uint8) {
	switch val {
	case cmdReadSector:
		d.cmd = DiskRead
	case cmdWriteSector:
		d.cmd = DiskWrite
	default:
		d.cmd = DiskNone
	}
	d.counter = 0

	log.ModDisk.DebugZ("command").
		Stringer("cmd", d.cmd).
		Uint("lba", uint64(d.lba)).
		End()
}

func (d *DiskController) status(uint8) uint8 {
	if d.cmd != DiskNone {
		return diskStatusBusy
	}
	return diskStatusIdle
}

// offset returns the position in the image of the next byte to transfer.
func (d *DiskController) offset() int {
	return int(d.lba)*SectorSize + d.counter
}

// advance moves to the next byte of the sector, the command is over once the
// whole sector has been transferred.
func (d *DiskController) advance() {
	d.counter++
	if d.counter >= SectorSize {
		log.ModDisk.DebugZ("sector transferred").
			Stringer("cmd", d.cmd).
			Uint("lba", uint64(d.lba)).
			End()
		d.cmd = DiskNone
		d.counter = 0
	}
}

func (d *DiskController) peekData(uint8) uint8 {
	if d.cmd != DiskRead {
		return 0
	}
	if off := d.offset(); off < len(d.image) {
		return d.image[off]
	}
	return 0
}

func (d *DiskController) readData(val uint8) uint8 {
	if d.cmd != DiskRead {
		return 0
	}
	val = d.peekData(val)
	d.advance()
	return val
}

func (d *DiskController) writeData(_, val uint8) {
	if d.cmd != DiskWrite {
		return
	}
	if off := d.offset(); off < len(d.image) {
		d.image[off] = val
		d.dirty = true
	} else {
		log.ModDisk.WarnZ("write beyond end of disk").
			Uint("lba", uint64(d.lba)).
			Int("offset", off).
			End()
	}
	d.advance()
}

// attached reports whether a disk image is present.
func (d *DiskController) attached() bool { return len(d.image) != 0 }

func (d *DiskController) Read8(reg uint16) uint8 {
	if !d.attached() {
		return 0
	}
	return d.Regs[reg&7].Read8()
}

func (d *DiskController) Peek8(reg uint16) uint8 {
	if !d.attached() {
		return 0
	}
	return d.Regs[reg&7].Peek8()
}

func (d *DiskController) Write8(reg uint16, val uint8) {
	if !d.attached() {
		return
	}
	d.Regs[reg&7].Write8(val)
}

func (d *DiskController) Tick()     {}
func (d *DiskController) IRQ() bool { return false }

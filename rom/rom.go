// package rom loads ROM and disk images. Both are raw binary files, without
// any header.
package rom

import (
	"errors"
	"fmt"
	"io"
	"os"

	"plu/emu/log"
)

// MaxSize is the size of the address space, the largest possible ROM.
const MaxSize = 0x10000

// SectorSize is the size of a disk block.
const SectorSize = 512

// Image is a ROM image. It's mapped at the top of the address space, so
// that it covers the interrupt vectors.
type Image struct {
	Path string
	Data []byte
}

// ReadImage loads a ROM image from file.
func ReadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img := &Image{Path: path}
	if _, err := img.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("rom %s: %w", path, err)
	}
	return img, nil
}

// ReadFrom implements io.ReaderFrom interface
func (img *Image) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return 0, err
	}
	switch {
	case len(buf) == 0:
		return 0, errors.New("empty image")
	case len(buf) > MaxSize:
		return 0, fmt.Errorf("image too large, max %d bytes", MaxSize)
	}
	img.Data = buf
	return int64(len(buf)), nil
}

// LoadAddress returns the address at which the image is mapped.
func (img *Image) LoadAddress() uint16 {
	return uint16(MaxSize - len(img.Data))
}

// Vector returns the 16-bit word stored at addr, or false if the image
// doesn't cover it.
func (img *Image) Vector(addr uint16) (uint16, bool) {
	base := int(img.LoadAddress())
	if int(addr) < base || int(addr)+1 >= MaxSize {
		return 0, false
	}
	off := int(addr) - base
	return uint16(img.Data[off+1])<<8 | uint16(img.Data[off]), true
}

// PrintInfos writes a summary of the image to w.
func (img *Image) PrintInfos(w io.Writer) {
	fmt.Fprintf(w, "file:     %s\n", img.Path)
	fmt.Fprintf(w, "size:     %d bytes\n", len(img.Data))
	fmt.Fprintf(w, "load at:  $%04X\n", img.LoadAddress())

	for _, v := range []struct {
		name string
		addr uint16
	}{
		{"NMI", 0xFFFA},
		{"RESET", 0xFFFC},
		{"IRQ/BRK", 0xFFFE},
	} {
		if vec, ok := img.Vector(v.addr); ok {
			fmt.Fprintf(w, "%-8s  $%04X\n", v.name+":", vec)
		} else {
			fmt.Fprintf(w, "%-8s  not covered\n", v.name+":")
		}
	}
}

// ReadDisk loads a disk image from file. The image is expected to be made of
// whole sectors, a warning is logged otherwise.
func ReadDisk(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("disk: %w", err)
	}
	if len(buf)%SectorSize != 0 {
		log.ModDisk.WarnZ("disk image size is not a multiple of the sector size").
			String("path", path).
			Int("size", len(buf)).
			End()
	}
	return buf, nil
}

// WriteDisk writes a disk image back to file.
func WriteDisk(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("disk: %w", err)
	}
	return nil
}

package rom

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadImage(t *testing.T) {
	data := make([]byte, 0x2000)
	data[0x1FFC] = 0x00 // reset vector at $FFFC
	data[0x1FFD] = 0xE0
	path := writeFile(t, "test.rom", data)

	img, err := ReadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.LoadAddress(); got != 0xE000 {
		t.Errorf("load address = $%04X, want $E000", got)
	}
	if vec, ok := img.Vector(0xFFFC); !ok || vec != 0xE000 {
		t.Errorf("reset vector = $%04X, %t, want $E000", vec, ok)
	}
	if _, ok := img.Vector(0x1000); ok {
		t.Errorf("$1000 isn't covered by the image")
	}

	var buf bytes.Buffer
	img.PrintInfos(&buf)
	for _, want := range []string{"size:     8192 bytes", "load at:  $E000", "RESET:    $E000"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("infos don't contain %q:\n%s", want, buf.String())
		}
	}
}

func TestReadImageFullSize(t *testing.T) {
	img, err := ReadImage(writeFile(t, "full.rom", make([]byte, MaxSize)))
	if err != nil {
		t.Fatal(err)
	}
	if img.LoadAddress() != 0 {
		t.Errorf("load address = $%04X, want 0", img.LoadAddress())
	}
}

func TestReadImageErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too large", make([]byte, MaxSize+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadImage(writeFile(t, "bad.rom", tt.data)); err == nil {
				t.Errorf("ReadImage should fail")
			}
		})
	}

	if _, err := ReadImage(filepath.Join(t.TempDir(), "missing.rom")); err == nil {
		t.Errorf("ReadImage should fail on missing file")
	}
}

func TestDiskRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte{0xA5}, 2*SectorSize)
	path := writeFile(t, "disk.img", data)

	disk, err := ReadDisk(path)
	if err != nil {
		t.Fatal(err)
	}
	disk[0] = 0x5A
	if err := WriteDisk(path, disk); err != nil {
		t.Fatal(err)
	}

	disk, err = ReadDisk(path)
	if err != nil {
		t.Fatal(err)
	}
	if disk[0] != 0x5A || disk[1] != 0xA5 || len(disk) != 2*SectorSize {
		t.Errorf("unexpected disk content after round trip")
	}

	if _, err := ReadDisk(filepath.Join(t.TempDir(), "missing.img")); err == nil {
		t.Errorf("ReadDisk should fail on missing file")
	}
}

package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"
)

func TestRenderPNG(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(renderPNG()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != iconSize || b.Dy() != iconSize {
		t.Errorf("Icon is %dx%d; want %dx%d", b.Dx(), b.Dy(), iconSize, iconSize)
	}

	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("Expected transparent corner")
	}
	if _, _, _, a := img.At(iconSize/2, 4).RGBA(); a == 0 {
		t.Error("Expected opaque disc")
	}
}

func TestWrapICO(t *testing.T) {
	pngData := renderPNG()
	ico := wrapICO(pngData)

	if len(ico) != 22+len(pngData) {
		t.Fatalf("ICO length = %d; want %d", len(ico), 22+len(pngData))
	}
	if kind := binary.LittleEndian.Uint16(ico[2:4]); kind != 1 {
		t.Errorf("ICO type = %d; want 1", kind)
	}
	if count := binary.LittleEndian.Uint16(ico[4:6]); count != 1 {
		t.Errorf("ICO image count = %d; want 1", count)
	}
	if size := binary.LittleEndian.Uint32(ico[14:18]); int(size) != len(pngData) {
		t.Errorf("ICO data size = %d; want %d", size, len(pngData))
	}
	if offset := binary.LittleEndian.Uint32(ico[18:22]); offset != 22 {
		t.Errorf("ICO data offset = %d; want 22", offset)
	}
	if !bytes.Equal(ico[22:], pngData) {
		t.Error("ICO payload differs from PNG")
	}
}

func TestIcon_Cached(t *testing.T) {
	first := Icon()
	if len(first) == 0 {
		t.Fatal("Empty icon")
	}
	if &Icon()[0] != &first[0] {
		t.Error("Icon not cached")
	}
}

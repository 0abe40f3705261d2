package main

import "testing"

func TestPlaceholderBitmap(t *testing.T) {
	bm := placeholderBitmap()
	if bm.Width != 16 || bm.Height != 16 {
		t.Fatalf("bitmap = %dx%d, want 16x16", bm.Width, bm.Height)
	}
	if len(bm.Pix) != 16*16*4 {
		t.Fatalf("len(Pix) = %d, want %d", len(bm.Pix), 16*16*4)
	}
	// BGRA light blue, fully opaque.
	if bm.Pix[0] != 0x80 || bm.Pix[1] != 0x80 || bm.Pix[2] != 0xFF || bm.Pix[3] != 0xFF {
		t.Errorf("first pixel = % x, want 80 80 ff ff", bm.Pix[:4])
	}
}

func TestPlaceholderBitmap_EncodedLength(t *testing.T) {
	data := placeholderBitmap().Encode()
	// 6 (header) + 16 (entry) + 40 (info) + 1024 (pixels) + 64 (mask)
	if len(data) != 1150 {
		t.Errorf("encoded length = %d, want 1150", len(data))
	}
}

// Package ico serializes raw bitmaps into single-image Windows ICO files.
//
// Two container flavors are supported: the classic uncompressed 32-bit
// DIB layout (BITMAPINFOHEADER + BGRA pixels + AND mask) and, for
// Vista-and-later consumers, a PNG-compressed entry via WrapPNG.
package ico

import (
	"encoding/binary"
	"image"
	"image/color"
)

const (
	fileHeaderSize = 6  // ICONDIR
	dirEntrySize   = 16 // ICONDIRENTRY
	infoHeaderSize = 40 // BITMAPINFOHEADER

	// bitmapOffset is where the image data block starts in a
	// single-image file: one header, one directory entry.
	bitmapOffset = fileHeaderSize + dirEntrySize
)

// Bitmap is one raw 32-bit icon image: BGRA samples (one byte per
// channel, blue first), rows stored bottom to top.
//
// Pix must hold exactly Width*Height*4 bytes. Encode trusts the caller
// and does not check; a mismatched buffer produces a malformed file.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte
}

// FromImage converts img into the raw BGRA bottom-up layout, with
// non-premultiplied alpha.
func FromImage(img image.Image) *Bitmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	pix := make([]byte, 0, w*h*4)
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix = append(pix, c.B, c.G, c.R, c.A)
		}
	}
	return &Bitmap{Width: w, Height: h, Pix: pix}
}

// MaskSize returns the AND-mask byte length for a w×h image: 1 bit per
// pixel, each row padded to a 32-bit boundary.
func MaskSize(w, h int) int {
	return ((w + 31) / 32) * 4 * h
}

// Encode serializes the bitmap as a single-image, 32-bit, uncompressed
// ICO file. The AND mask is emitted all-zero (fully opaque); readers
// that understand 32-bit entries take transparency from the alpha
// channel instead. Output is deterministic for a given bitmap.
func (bm *Bitmap) Encode() []byte {
	maskLen := MaskSize(bm.Width, bm.Height)
	bitmapSize := infoHeaderSize + len(bm.Pix) + maskLen

	buf := make([]byte, bitmapOffset+bitmapSize)

	// ICONDIR header
	binary.LittleEndian.PutUint16(buf[0:], 0) // reserved
	binary.LittleEndian.PutUint16(buf[2:], 1) // type: ICO
	binary.LittleEndian.PutUint16(buf[4:], 1) // count: 1 image

	// ICONDIRENTRY
	buf[6] = dimByte(bm.Width)
	buf[7] = dimByte(bm.Height)
	buf[8] = 0                                                  // color count (0 for truecolor)
	buf[9] = 0                                                  // reserved
	binary.LittleEndian.PutUint16(buf[10:], 1)                  // planes
	binary.LittleEndian.PutUint16(buf[12:], 32)                 // bits per pixel
	binary.LittleEndian.PutUint32(buf[14:], uint32(bitmapSize)) // data size
	binary.LittleEndian.PutUint32(buf[18:], bitmapOffset)       // data offset

	// BITMAPINFOHEADER. Height is stored doubled: the field covers the
	// XOR (pixel) and AND (mask) blocks together.
	binary.LittleEndian.PutUint32(buf[bitmapOffset:], infoHeaderSize)
	binary.LittleEndian.PutUint32(buf[bitmapOffset+4:], uint32(bm.Width))
	binary.LittleEndian.PutUint32(buf[bitmapOffset+8:], uint32(2*bm.Height))
	binary.LittleEndian.PutUint16(buf[bitmapOffset+12:], 1)  // planes
	binary.LittleEndian.PutUint16(buf[bitmapOffset+14:], 32) // bits per pixel
	// compression, image size, resolution and palette fields stay zero

	copy(buf[bitmapOffset+infoHeaderSize:], bm.Pix)
	// trailing maskLen bytes are the all-zero AND mask
	return buf
}

// WrapPNG wraps already-encoded PNG bytes in a minimal single-image ICO
// container. Windows LoadImage accepts PNG-compressed entries since
// Vista; this is the cheap path when a PNG of the icon already exists.
func WrapPNG(pngData []byte, w, h int) []byte {
	buf := make([]byte, bitmapOffset+len(pngData))

	// ICONDIR header
	binary.LittleEndian.PutUint16(buf[0:], 0) // reserved
	binary.LittleEndian.PutUint16(buf[2:], 1) // type: ICO
	binary.LittleEndian.PutUint16(buf[4:], 1) // count: 1 image

	// ICONDIRENTRY
	buf[6] = dimByte(w)
	buf[7] = dimByte(h)
	buf[8] = 0                                                    // color count (0 for truecolor)
	buf[9] = 0                                                    // reserved
	binary.LittleEndian.PutUint16(buf[10:], 1)                    // planes
	binary.LittleEndian.PutUint16(buf[12:], 32)                   // bits per pixel
	binary.LittleEndian.PutUint32(buf[14:], uint32(len(pngData))) // data size
	binary.LittleEndian.PutUint32(buf[18:], bitmapOffset)         // data offset

	copy(buf[bitmapOffset:], pngData)
	return buf
}

// dimByte encodes a pixel dimension for a directory entry: 0 means 256
// (or larger) per the ICO format.
func dimByte(v int) byte {
	if v >= 256 {
		return 0
	}
	return byte(v)
}

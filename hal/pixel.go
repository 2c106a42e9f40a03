package hal

// RGB565 packs an 8-bit-per-channel color into the framebuffer format.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGB888From565 expands a framebuffer pixel back to 8 bits per channel.
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// expandRGB565 converts little-endian RGB565 pixels in src into opaque RGBA
// pixels in dst.
func expandRGB565(dst, src []byte) {
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, g, b := RGB888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}

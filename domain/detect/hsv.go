package detect

// rgbToHSV converts 8-bit RGB to HSV on OpenCV-style scales:
// hue 0-180, saturation and value 0-255.
func rgbToHSV(r, g, b uint8) (h, s, v uint8) {
	maxC := r
	if g > maxC {
		maxC = g
	}
	if b > maxC {
		maxC = b
	}
	minC := r
	if g < minC {
		minC = g
	}
	if b < minC {
		minC = b
	}

	v = maxC
	delta := int(maxC) - int(minC)
	if maxC == 0 || delta == 0 {
		return 0, 0, v
	}
	s = uint8((255*delta + int(maxC)/2) / int(maxC))

	var hue int
	switch maxC {
	case r:
		hue = (60 * (int(g) - int(b))) / delta
	case g:
		hue = 120 + (60*(int(b)-int(r)))/delta
	default:
		hue = 240 + (60*(int(r)-int(g)))/delta
	}
	if hue < 0 {
		hue += 360
	}
	return uint8(hue / 2), s, v
}

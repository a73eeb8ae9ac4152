package pushy

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"
)

const dollyCursorName = "dolly"

// DollyCursorImage draws the push/pull pointer: a horizontal double arrow,
// white with a black outline, on a transparent size x size square.
func DollyCursorImage(size int) *image.RGBA {
	if size < 16 {
		size = 16
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	s := float32(size)
	z := vector.NewRasterizer(size, size)
	doubleArrow(z, s, s/32)
	z.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})

	z.Reset(size, size)
	doubleArrow(z, s, 0)
	z.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{})
	return img
}

// doubleArrow traces the arrow for an s-sized glyph, grown by pad on each side.
func doubleArrow(z *vector.Rasterizer, s, pad float32) {
	c := s / 2
	margin := s/8 - pad
	head := s / 4
	headHalf := s/4 + pad
	shaftHalf := s*3/32 + pad

	left, right := margin, s-margin
	z.MoveTo(left, c)
	z.LineTo(left+head, c-headHalf)
	z.LineTo(left+head, c-shaftHalf)
	z.LineTo(right-head, c-shaftHalf)
	z.LineTo(right-head, c-headHalf)
	z.LineTo(right, c)
	z.LineTo(right-head, c+headHalf)
	z.LineTo(right-head, c+shaftHalf)
	z.LineTo(left+head, c+shaftHalf)
	z.LineTo(left+head, c+headHalf)
	z.ClosePath()
}

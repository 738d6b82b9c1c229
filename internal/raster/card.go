package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	cardBorder = color.RGBA{0xE5, 0xE7, 0xEB, 0xFF}
	cardTitle  = color.RGBA{0x33, 0x33, 0x33, 0xFF}
	cardDetail = color.RGBA{0x66, 0x66, 0x66, 0xFF}
)

// Card draws a placeholder page of width x height units: a white sheet with
// a light border inset by 10, the title at (20,30) and each detail line 20
// units below the previous one. The result is scale times larger.
func Card(width, height, scale int, title string, details ...string) *image.RGBA {
	width, height, scale = max(width, 40), max(height, 40), max(scale, 1)

	sheet := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	strokeRect(sheet, image.Rect(10, 10, width-10, height-10), cardBorder)

	d := font.Drawer{Dst: sheet, Face: basicfont.Face7x13}
	d.Src = image.NewUniform(cardTitle)
	d.Dot = fixed.P(20, 30)
	d.DrawString(title)

	d.Src = image.NewUniform(cardDetail)
	for i, line := range details {
		d.Dot = fixed.P(20, 50+20*i)
		d.DrawString(line)
	}

	if scale == 1 {
		return sheet
	}
	out := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), sheet, sheet.Bounds(), xdraw.Src, nil)
	return out
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

package assets

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// Placeholders stand in for missing asset files so the scene still runs.

// Checker returns a size x size checkerboard of cells x cells squares.
func Checker(size, cells int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(1, size/max(1, cells))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var (
	skyZenith  = color.RGBA{R: 8, G: 12, B: 40, A: 255}
	skyHorizon = color.RGBA{R: 70, G: 60, B: 120, A: 255}
	skyGround  = color.RGBA{R: 4, G: 4, B: 10, A: 255}
)

// SkyGradient returns six cube-map faces blending from zenith at +Y to a
// dark ground at -Y.
func SkyGradient(size int) [6]*image.RGBA {
	var faces [6]*image.RGBA
	for i := range faces {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			// face row 0 is the top of the face
			t := float32(y) / float32(max(1, size-1))
			var c color.RGBA
			switch i {
			case 2:
				c = skyZenith
			case 3:
				c = skyGround
			default:
				if t < 0.5 {
					c = lerpRGBA(skyZenith, skyHorizon, t*2)
				} else {
					c = lerpRGBA(skyHorizon, skyGround, (t-0.5)*2)
				}
			}
			for x := 0; x < size; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		faces[i] = img
	}
	return faces
}

func lerpRGBA(a, b color.RGBA, t float32) color.RGBA {
	l := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

// Hill returns a heightmap with a smooth radial hill of the given peak in
// the blue channel.
func Hill(size int, peak uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float32(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := (float32(x)-c)/c, (float32(y)-c)/c
			d := math32.Min(1, math32.Sqrt(dx*dx+dy*dy))
			h := (math32.Cos(d*math32.Pi) + 1) / 2
			v := uint8(h*float32(peak) + 0.5)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

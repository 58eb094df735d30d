package rows

import (
	"image"
	"image/color"
	"image/draw"
)

const background = 240

func fill(img draw.Image, r image.Rectangle, v uint8) {
	draw.Draw(img, r, &image.Uniform{C: color.Gray{Y: v}}, image.Point{}, draw.Src)
}

// textRow returns a name-region row with a dark block at x.
func textRow(x int) *image.Gray {
	r := image.NewGray(image.Rect(0, 0, NameWidth, RowTop-RowBottom))
	fill(r, r.Bounds(), background)
	fill(r, image.Rect(x, 10, x+15, 25), 40)
	return r
}

func blankRow() *image.Gray {
	r := image.NewGray(image.Rect(0, 0, NameWidth, RowTop-RowBottom))
	fill(r, r.Bounds(), background)
	return r
}

// listCrop draws separators on the reference column at phase+k*pitch and a
// name block per row. priced selects rows that show a price label.
func listCrop(phase float64, priced func(k int) bool) *image.Gray {
	crop := image.NewGray(image.Rect(0, 0, 585, 480))
	fill(crop, crop.Bounds(), background)
	for k := 0; ; k++ {
		pos := phase + float64(k)*RowPitch
		if pos >= 480 {
			break
		}
		y := int(pos)
		crop.SetGray(0, y, color.Gray{Y: 90})
		if y < RowTop {
			continue
		}
		fill(crop, image.Rect(50+20*k, y-30, 65+20*k, y-15), 30)
		if priced == nil || priced(k) {
			fill(crop, image.Rect(500, y-30, 560, y-15), 60)
		}
	}
	return crop
}

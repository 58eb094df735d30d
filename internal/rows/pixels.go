package rows

import (
	"image"
	"math"
)

// Min returns the darkest pixel value of img, or 255 for an empty image.
func Min(img *image.Gray) uint8 {
	b := img.Bounds()
	lowest := uint8(math.MaxUint8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for _, v := range img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)] {
			if v < lowest {
				lowest = v
			}
		}
	}
	return lowest
}

// MeanAbsDiff is the mean absolute pixel difference between two images of
// the same size. Images of different sizes never match.
func MeanAbsDiff(a, b *image.Gray) float64 {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Size() != bb.Size() {
		return math.Inf(1)
	}
	n := ab.Dx() * ab.Dy()
	if n == 0 {
		return 0
	}

	var sum int
	for y := 0; y < ab.Dy(); y++ {
		ra := a.Pix[a.PixOffset(ab.Min.X, ab.Min.Y+y):a.PixOffset(ab.Max.X, ab.Min.Y+y)]
		rb := b.Pix[b.PixOffset(bb.Min.X, bb.Min.Y+y):b.PixOffset(bb.Max.X, bb.Min.Y+y)]
		for x := range ra {
			d := int(ra[x]) - int(rb[x])
			if d < 0 {
				d = -d
			}
			sum += d
		}
	}
	return float64(sum) / float64(n)
}

// meanAbsDiffAll averages MeanAbsDiff over pairs of equally sized rows,
// which equals the difference of the two vertically stacked batches.
func meanAbsDiffAll(a, b []*image.Gray) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	var total float64
	for i := range a {
		total += MeanAbsDiff(a[i], b[i])
	}
	return total / float64(len(a))
}

// Crop copies rect of img into a new image anchored at the origin, so the
// result does not keep the source buffer alive.
func Crop(img *image.Gray, rect image.Rectangle) *image.Gray {
	rect = rect.Add(img.Bounds().Min).Intersect(img.Bounds())
	out := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		copy(out.Pix[out.PixOffset(0, y):out.PixOffset(rect.Dx(), y)],
			img.Pix[img.PixOffset(rect.Min.X, rect.Min.Y+y):img.PixOffset(rect.Max.X, rect.Min.Y+y)])
	}
	return out
}

package frame

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PatchMean returns the mean R, G and B of rect (full-frame coordinates).
func PatchMean(img *image.RGBA, rect image.Rectangle) [3]float64 {
	rect = rect.Add(img.Bounds().Min).Intersect(img.Bounds())
	n := rect.Dx() * rect.Dy()
	if n == 0 {
		return [3]float64{}
	}

	channels := [3][]float64{make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n)}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := img.RGBAAt(x, y)
			channels[0] = append(channels[0], float64(c.R))
			channels[1] = append(channels[1], float64(c.G))
			channels[2] = append(channels[2], float64(c.B))
		}
	}
	return [3]float64{
		stat.Mean(channels[0], nil),
		stat.Mean(channels[1], nil),
		stat.Mean(channels[2], nil),
	}
}

// ColorDistance is the Euclidean distance between a sampled mean and c.
func ColorDistance(mean [3]float64, c color.RGBA) float64 {
	ref := []float64{float64(c.R), float64(c.G), float64(c.B)}
	return floats.Distance(mean[:], ref, 2)
}

// Gray converts rect of img (full-frame coordinates) to a standalone
// grayscale image whose bounds start at (0,0).
func Gray(img *image.RGBA, rect image.Rectangle) *image.Gray {
	origin := img.Bounds().Min
	rect = rect.Add(origin).Intersect(img.Bounds())
	out := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			c := img.RGBAAt(rect.Min.X+x, rect.Min.Y+y)
			out.SetGray(x, y, color.GrayModel.Convert(c).(color.Gray))
		}
	}
	return out
}

// ScrollOffset returns the first row of the scrollbar strip whose mean
// brightness drops below threshold, or 0 when none does.
func ScrollOffset(img *image.RGBA, rect image.Rectangle, threshold float64) int {
	strip := Gray(img, rect)
	b := strip.Bounds()
	row := make([]float64, b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			row[x] = float64(strip.GrayAt(x, y).Y)
		}
		if stat.Mean(row, nil) < threshold {
			return y
		}
	}
	return 0
}

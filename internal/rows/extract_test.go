package rows

import (
	"image"
	"image/color"
	"testing"
)

func TestExtractGrid(t *testing.T) {
	e := NewExtractor(DefaultExtractConfig())
	got := e.Extract(listCrop(20, nil), false)

	if len(got) != 8 {
		t.Fatalf("Extract() returned %d rows, want 8", len(got))
	}
	for i, r := range got {
		if r.Bounds() != image.Rect(0, 0, NameWidth, RowTop-RowBottom) {
			t.Errorf("row %d bounds = %v", i, r.Bounds())
		}
		if Min(r) != 30 {
			t.Errorf("row %d min = %d, want the name block", i, Min(r))
		}
	}
}

func TestExtractToleratesMissingSeparators(t *testing.T) {
	crop := listCrop(20, nil)
	// Erase two separators; the grid is rebuilt from the others.
	for _, y := range []int{126, 340} {
		crop.SetGray(0, y, color.Gray{Y: background})
	}
	if got := NewExtractor(DefaultExtractConfig()).Extract(crop, false); len(got) != 8 {
		t.Errorf("Extract() returned %d rows, want 8", len(got))
	}
}

func TestExtractNoSeparators(t *testing.T) {
	crop := image.NewGray(image.Rect(0, 0, 585, 480))
	fill(crop, crop.Bounds(), background)
	if got := NewExtractor(DefaultExtractConfig()).Extract(crop, false); len(got) != 0 {
		t.Errorf("Extract() returned %d rows, want 0", len(got))
	}
}

func TestExtractForSale(t *testing.T) {
	crop := listCrop(20, func(k int) bool { return k%2 == 0 })
	e := NewExtractor(DefaultExtractConfig())

	all := e.Extract(crop, false)
	priced := e.Extract(crop, true)
	if len(all) != 8 || len(priced) != 4 {
		t.Errorf("rows = %d all, %d for sale; want 8 and 4", len(all), len(priced))
	}
}

func TestExtractStopsEarly(t *testing.T) {
	n := 0
	for range NewExtractor(DefaultExtractConfig()).Rows(listCrop(20, nil), false) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d rows, want 2", n)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		in   []float64
		want float64
	}{
		{[]float64{3}, 3},
		{[]float64{5, 1, 3}, 3},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		if got := median(tt.in); got != tt.want {
			t.Errorf("median(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

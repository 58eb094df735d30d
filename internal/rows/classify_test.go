package rows

import (
	"errors"
	"image"
	"testing"

	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

func shifted(from, n int) []*image.Gray {
	out := make([]*image.Gray, n)
	for i := range out {
		out[i] = textRow(5 + 17*(from+i))
	}
	return out
}

func TestDuplicate(t *testing.T) {
	c := NewClassifier(DefaultClassifyConfig())

	tests := []struct {
		name  string
		all   []*image.Gray
		batch []*image.Gray
		want  bool
	}{
		{"same page", shifted(0, 6), shifted(1, 5), true},
		{"next page", shifted(0, 6), shifted(6, 5), false},
		{"batch too short", shifted(0, 6), shifted(2, 4), false},
		{"history not longer", shifted(0, 5), shifted(0, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Duplicate(tt.all, tt.batch); got != tt.want {
				t.Errorf("Duplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemScroll(t *testing.T) {
	c := NewClassifier(DefaultClassifyConfig())

	tests := []struct {
		name  string
		all   []*image.Gray
		batch []*image.Gray
		want  bool
	}{
		{"down one", shifted(0, 5), shifted(1, 5), true},
		{"up one", shifted(2, 5), shifted(1, 5), true},
		{"page", shifted(0, 5), shifted(5, 5), false},
		{"short history", shifted(0, 2), shifted(0, 5), false},
		{"short batch", shifted(0, 5), shifted(3, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ItemScroll(tt.all, tt.batch); got != tt.want {
				t.Errorf("ItemScroll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPartial(t *testing.T) {
	c := NewClassifier(DefaultClassifyConfig())
	if c.Partial(shifted(0, 3)) {
		t.Error("full page reported partial")
	}
	if !c.Partial(append(shifted(0, 3), blankRow())) {
		t.Error("page with blank row not reported partial")
	}
}

func TestAccumulatorStride(t *testing.T) {
	a := NewAccumulator(NewClassifier(DefaultClassifyConfig()), 0)
	var parsed []int
	for i := 0; i < 7; i++ {
		if a.Want() {
			parsed = append(parsed, i)
		}
	}
	want := []int{0, 3, 6}
	if len(parsed) != len(want) {
		t.Fatalf("parsed frames = %v, want %v", parsed, want)
	}
	for i := range want {
		if parsed[i] != want[i] {
			t.Errorf("parsed frames = %v, want %v", parsed, want)
		}
	}
}

func TestAccumulatorRescansPartialPage(t *testing.T) {
	a := NewAccumulator(NewClassifier(DefaultClassifyConfig()), 0)
	if !a.Want() {
		t.Fatal("first frame not parsed")
	}
	if _, err := a.Add(append(shifted(0, 3), blankRow())); err != nil {
		t.Fatal(err)
	}
	if !a.Want() {
		t.Error("frame after a partial page not parsed")
	}
}

func TestAccumulatorSkipsNonAdvancingFrames(t *testing.T) {
	a := NewAccumulator(NewClassifier(DefaultClassifyConfig()), 0)
	if added, err := a.Add(shifted(0, 6)); !added || err != nil {
		t.Fatalf("Add() = (%v, %v)", added, err)
	}
	if added, err := a.Add(shifted(1, 5)); added || err != nil {
		t.Fatalf("Add() of the same page = (%v, %v), want dropped", added, err)
	}
	if n := len(a.rows); n != 6 {
		t.Errorf("rows = %d, want 6", n)
	}
}

func TestAccumulatorScrollingTooSlowly(t *testing.T) {
	a := NewAccumulator(NewClassifier(DefaultClassifyConfig()), MaxItemScrolls)

	var err error
	adds := 0
	for k := 0; k < 22 && err == nil; k++ {
		_, err = a.Add(shifted(k, 3))
		adds++
	}
	if !apperr.IsCode(err, apperr.CodeScrollTooSlow) {
		t.Fatalf("error = %v, want SCROLL_TOO_SLOW", err)
	}
	if err.Error() != "Video is scrolling too slowly." {
		t.Errorf("message = %q", err.Error())
	}
	// The first batch has no history, the next 20 are item scrolls.
	if adds != MaxItemScrolls+1 {
		t.Errorf("failed after %d batches, want %d", adds, MaxItemScrolls+1)
	}
}

func TestAccumulatorNoItems(t *testing.T) {
	a := NewAccumulator(NewClassifier(DefaultClassifyConfig()), 0)
	_, err := a.Finish()
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeNoItems {
		t.Fatalf("Finish() error = %v, want NO_ITEMS", err)
	}
	if appErr.Message != "No items found, invalid video?" {
		t.Errorf("message = %q", appErr.Message)
	}
}

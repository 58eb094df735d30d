package rows

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/corona10/goimagehash"
)

// Dedupe drops blank rows and rows whose hash was already seen, keeping the
// first occurrence of each.
func Dedupe(all []*image.Gray) []*image.Gray {
	seen := make(map[string]struct{}, len(all))
	out := make([]*image.Gray, 0, len(all))
	for _, r := range all {
		if Min(r) > BlankMin {
			continue
		}
		key, err := Hash(r)
		if err != nil {
			// Unhashable rows are kept; duplicates only cost OCR time.
			slog.Debug("row hash failed", "error", err)
			out = append(out, r)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Hash returns a block-mean fingerprint of r.
func Hash(r *image.Gray) (string, error) {
	h, err := goimagehash.ExtAverageHash(r, HashSize, HashSize)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.GetHash()), nil
}

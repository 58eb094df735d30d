package ocr

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// ErrNoScript is returned when OSD output carries no script line.
var ErrNoScript = errors.New("no script in OSD output")

// OSD detects scripts by running the tesseract binary in orientation and
// script detection mode. libtesseract exposes no OSD result through
// gosseract, so this shells out.
type OSD struct {
	bin         string
	tessdataDir string
	timeout     time.Duration
}

// NewOSD creates a detector. Empty bin defaults to "tesseract" on PATH.
func NewOSD(bin, tessdataDir string) *OSD {
	if bin == "" {
		bin = DefaultTesseractBin
	}
	return &OSD{bin: bin, tessdataDir: tessdataDir, timeout: DefaultOSDTimeout}
}

// DetectScript implements ScriptDetector.
func (o *OSD) DetectScript(ctx context.Context, img image.Image) (string, error) {
	var in bytes.Buffer
	if err := imaging.Encode(&in, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, o.bin, "stdin", "stdout", "--psm", strconv.Itoa(OSDPageSegMode))
	if o.tessdataDir != "" {
		cmd.Args = append(cmd.Args, "--tessdata-dir", o.tessdataDir)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = &in
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract osd failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}
	return ParseScript(stdout.String())
}

// ParseScript extracts the "Script:" value from tesseract OSD output.
func ParseScript(osd string) (string, error) {
	sc := bufio.NewScanner(strings.NewReader(osd))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if ok && strings.TrimSpace(key) == "Script" {
			if script := strings.TrimSpace(value); script != "" {
				return script, nil
			}
		}
	}
	return "", ErrNoScript
}

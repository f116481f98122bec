package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxCVSize is the largest accepted CV upload.
const MaxCVSize = 10 << 20

// ErrInvalidCV signals an empty, oversized or unsupported CV upload.
var ErrInvalidCV = errors.New("invalid cv")

var cvExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true, ".txt": true}

// CV is an uploaded résumé file.
type CV struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Validate checks size and file type.
func (cv CV) Validate() error {
	if len(cv.Data) == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidCV)
	}
	if len(cv.Data) > MaxCVSize {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidCV, MaxCVSize)
	}
	ext := strings.ToLower(filepath.Ext(cv.Filename))
	if !cvExtensions[ext] {
		return fmt.Errorf("%w: unsupported file type %q (pdf, doc, docx, txt)", ErrInvalidCV, ext)
	}
	return nil
}

// Analysis is what a CV analyzer extracted: suggested job titles in model order.
type Analysis struct {
	CVID     string
	Keywords []string
}

// Analyzer is the CV-analysis contract between layers.
type Analyzer interface {
	Analyze(ctx context.Context, cv CV) (Analysis, error)
}

// HealthChecker verifies analyzer provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

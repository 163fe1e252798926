package printing

import (
	"context"
	"strings"
	"time"
)

// PaperSize names a supported page format
type PaperSize string

const (
	PaperSizeA4     PaperSize = "A4"
	PaperSizeLetter PaperSize = "LETTER"
)

// portrait width and height in millimeters
var paperDimensions = map[PaperSize][2]float64{
	PaperSizeA4:     {210, 297},
	PaperSizeLetter: {215.9, 279.4},
}

func (p PaperSize) IsValid() bool {
	_, ok := paperDimensions[p]
	return ok
}

// Dimensions returns the portrait width and height in millimeters. Unknown
// sizes fall back to A4.
func (p PaperSize) Dimensions() (width, height float64) {
	d, ok := paperDimensions[p]
	if !ok {
		d = paperDimensions[PaperSizeA4]
	}
	return d[0], d[1]
}

type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// Margins in millimeters
type Margins struct {
	Top, Right, Bottom, Left int
}

func DefaultMargins() Margins {
	return Margins{Top: 20, Right: 20, Bottom: 20, Left: 20}
}

// RenderRequest is one HTML document to print. Title becomes the PDF
// metadata title; FooterHTML, when set, is stamped by Chrome on every page.
type RenderRequest struct {
	HTML        string
	PaperSize   PaperSize
	Orientation Orientation
	Margins     Margins
	Title       string
	FooterHTML  string
	Timeout     time.Duration // zero uses the renderer default
}

type RenderResult struct {
	PDFData        []byte
	RenderDuration time.Duration
}

// PDFRenderer turns HTML into PDF bytes
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeDisabled      = "RENDER_DISABLED"
)

// RenderError carries one of the ErrCode* values
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error { return e.Cause }

func (req *RenderRequest) validate() error {
	switch {
	case req == nil:
		return NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	case strings.TrimSpace(req.HTML) == "":
		return NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	case !req.PaperSize.IsValid():
		return NewRenderError(ErrCodeInvalidHTML, "unsupported paper size "+string(req.PaperSize), nil)
	}
	return nil
}

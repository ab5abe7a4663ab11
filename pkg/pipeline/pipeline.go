// Package pipeline provides the core visualization pipeline for Mosaic.
//
// This package implements the complete decode → build → layout → render
// pipeline used by the CLI. By centralizing this logic, every entry point
// behaves identically and stage wiring lives in one place.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Decode: Read a tree description from an external document
//  2. Build: Validate the tree and collect its dimensions
//  3. Layout: Partition the bounds into one rectangle per node
//  4. Render: Generate output in various formats (SVG, PNG, DOT, TXT, JSON)
//
// Stages run synchronously in order; each consumes the previous stage's
// output. Individual stages can also be run on their own.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:   "groceries.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Decode only
//	root, format, err := runner.Decode(ctx, opts)
//
//	// Layout with an existing tree
//	layout, err := runner.ComputeLayout(ctx, root, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, layout, root, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/input"
	"github.com/matzehuels/mosaic/pkg/render/svg"
	"github.com/matzehuels/mosaic/pkg/tree"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultWidth is the default layout width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default layout height in pixels.
	DefaultHeight = 600.0

	// DefaultStyle is the default SVG visual style.
	DefaultStyle = "flat"

	// DefaultScale is the default PNG supersampling factor.
	DefaultScale = 2

	// DefaultTermWidth is the default character grid width for txt output.
	DefaultTermWidth = 100

	// DefaultTermHeight is the default character grid height for txt output.
	DefaultTermHeight = 30
)

// DefaultPalette is the default tile color palette.
const DefaultPalette = treemap.DefaultPalette

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatTXT  = "txt"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatTXT:  true,
	FormatJSON: true,
}

// ValidAxes is the set of supported root split axes. The empty string
// selects the default (x).
var ValidAxes = map[string]bool{
	"":  true,
	"x": true,
	"y": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// The struct serializes to JSON so option sets can be stored and replayed
// by tooling.
type Options struct {
	// Decode options
	Input  string `json:"input,omitempty"`  // input document path
	Format string `json:"format,omitempty"` // input format name; sniffed when empty

	// Layout options
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Axis     string  `json:"axis,omitempty"`      // axis divided at the root: "x" or "y"
	MaxDepth int     `json:"max_depth,omitempty"` // 0 means unlimited

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Palette    string   `json:"palette,omitempty"`
	Title      string   `json:"title,omitempty"`
	Frames     bool     `json:"frames,omitempty"`      // outline internal rectangles (svg, png)
	Detailed   bool     `json:"detailed,omitempty"`    // totals and leaf counts in labels (dot)
	Scale      int      `json:"scale,omitempty"`       // supersampling factor (png)
	Font       string   `json:"font,omitempty"`        // label font family (png)
	TermWidth  int      `json:"term_width,omitempty"`  // character grid width (txt)
	TermHeight int      `json:"term_height,omitempty"` // character grid height (txt)

	// Runtime options (not serialized)
	Tree   *tree.Node  `json:"-"` // pre-built tree; skips the decode stage
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the decoded (or supplied) weighted tree.
	Tree *tree.Node

	// Layout contains the computed tile geometry.
	Layout *treemap.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputFormat input.Format
	NodeCount   int
	LeafCount   int
	TileCount   int
	DecodeTime  time.Duration
	BuildTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, txt, json)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that an SVG style name is valid.
func ValidateStyle(style string) error {
	if _, ok := svg.StyleByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %s)", style, joinNames(svg.StyleNames()))
	}
	return nil
}

// ValidatePalette checks that a palette name is valid.
func ValidatePalette(name string) error {
	if _, err := treemap.PaletteByName(name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPalette, err,
			"invalid palette: %q (must be one of: %s)", name, joinNames(treemap.PaletteNames()))
	}
	return nil
}

// ValidateAxis checks that a root split axis is valid.
func ValidateAxis(axis string) error {
	if !ValidAxes[axis] {
		return errors.New(errors.ErrCodeInvalidParams, "invalid axis: %q (must be x or y)", axis)
	}
	return nil
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDecode checks required fields for the decode stage.
func (o *Options) ValidateForDecode() error {
	if o.Input == "" && o.Tree == nil {
		return errors.New(errors.ErrCodeInvalidParams, "input path or tree is required")
	}
	if o.Format != "" {
		if _, err := input.ParseFormat(o.Format); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidParams, "max depth must be non-negative, got %d", o.MaxDepth)
	}
	return ValidateAxis(o.Axis)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.TermWidth == 0 {
		o.TermWidth = DefaultTermWidth
	}
	if o.TermHeight == 0 {
		o.TermHeight = DefaultTermHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidatePalette(o.Palette); err != nil {
		return err
	}
	return errors.ValidateScale(o.Scale)
}

// LayoutOptions converts the layout fields to treemap options.
func (o *Options) LayoutOptions() []treemap.Option {
	var opts []treemap.Option
	if o.Axis == "y" {
		opts = append(opts, treemap.WithAxis(treemap.AxisY))
	}
	if o.MaxDepth > 0 {
		opts = append(opts, treemap.WithMaxDepth(o.MaxDepth))
	}
	return opts
}

// Bounds returns the layout bounding rectangle.
func (o *Options) Bounds() treemap.Rect {
	return treemap.Rect{W: o.Width, H: o.Height}
}

// WantsFormat reports whether the given output format was requested.
func (o *Options) WantsFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

package chart

import "gonum.org/v1/plot/vg"

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the canvas size in inches.
func WithSize(widthIn, heightIn float64) Option {
	return func(r *Renderer) {
		if widthIn > 0 && heightIn > 0 {
			r.width = vg.Length(widthIn) * vg.Inch
			r.height = vg.Length(heightIn) * vg.Inch
		}
	}
}

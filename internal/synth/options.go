package synth

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithYears sets the inclusive year span.
func WithYears(start, end int) Option {
	return func(g *Generator) {
		if start > 0 && end > 0 {
			g.startYear = start
			g.endYear = end
		}
	}
}

// WithProvinces replaces the generated province list.
func WithProvinces(provinces []string) Option {
	return func(g *Generator) {
		if provinces != nil {
			g.provinces = append([]string(nil), provinces...)
		}
	}
}

// WithWorkers bounds how many provinces are generated concurrently.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

package palette

type config struct {
	alpha   bool
	reverse bool
	naColor string
	noClamp bool
	space   BlendSpace
}

// Option changes how a palette is built or how it formats colors.
type Option func(*config)

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithAlpha formats colors as #RRGGBBAA instead of #RRGGBB
func WithAlpha(alpha bool) Option {
	return func(c *config) {
		c.alpha = alpha
	}
}

// WithReverse reverses the order of the colors (or runs a ramp from 1 to 0).
func WithReverse(reverse bool) Option {
	return func(c *config) {
		c.reverse = reverse
	}
}

// WithNAColor sets the color Color returns for values that cannot be mapped. Default is NA.
func WithNAColor(naColor string) Option {
	return func(c *config) {
		c.naColor = naColor
	}
}

// WithClamp controls whether values outside the domain of a numeric palette are clamped
// to the ends of the domain (the default) or are NA.
func WithClamp(clamp bool) Option {
	return func(c *config) {
		c.noClamp = !clamp
	}
}

// WithBlendSpace sets the color space used to interpolate between colors.
func WithBlendSpace(space BlendSpace) Option {
	return func(c *config) {
		c.space = space
	}
}

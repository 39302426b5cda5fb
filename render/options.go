package render

// Options holds presentation settings shared by the figure builders. Zero
// values mean "use the default"; builders only read the fields that make
// sense for them (SortBy does nothing on a map, MapName nothing on a
// stacked plot).
type Options struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
	// MapName is the echarts map to draw sites on. "world" gives the
	// global extent; a named region ("asia", "oceania", ...) restricts it.
	MapName string
	// ColorBy is the string column whose values split map points into
	// separately colored series.
	ColorBy string
	// SortBy orders the charts of a stacked plot.
	SortBy string
	// Labels turns site name labels on map points on.
	Labels bool
	// MaxSeries caps how many charts a stacked plot will draw.
	MaxSeries int
}

// Option is a functional option for the figure builders.
type Option func(*Options)

// WithTitle sets the figure title and subtitle.
func WithTitle(title, subtitle string) Option {
	return func(o *Options) {
		o.Title = title
		o.Subtitle = subtitle
	}
}

// WithSize sets the figure dimensions (css lengths, e.g. "1200px").
func WithSize(width, height string) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithMap sets the map extent by echarts map name.
func WithMap(name string) Option {
	return func(o *Options) {
		o.MapName = name
	}
}

// WithColorBy sets the column map points are colored by.
func WithColorBy(col string) Option {
	return func(o *Options) {
		o.ColorBy = col
	}
}

// WithSortBy sets the column stacked plots are ordered by.
func WithSortBy(col string) Option {
	return func(o *Options) {
		o.SortBy = col
	}
}

// WithLabels toggles site name labels on maps.
func WithLabels(on bool) Option {
	return func(o *Options) {
		o.Labels = on
	}
}

// WithMaxSeries caps the number of charts in a stacked plot.
func WithMaxSeries(n int) Option {
	return func(o *Options) {
		o.MaxSeries = n
	}
}

func newOptions(options ...Option) Options {
	o := Options{
		Width:     "1200px",
		Height:    "600px",
		MapName:   "world",
		MaxSeries: 30,
	}
	for _, opt := range options {
		opt(&o)
	}
	return o
}

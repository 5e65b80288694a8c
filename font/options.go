package font

// Option configures font loading.
type Option func(*loadConfig)

// loadConfig holds configuration for Load and Parse.
type loadConfig struct {
	parserName string
	metrics    MetricsSource
}

// defaultLoadConfig returns the default load configuration.
func defaultLoadConfig() loadConfig {
	return loadConfig{
		parserName: defaultParserName,
		metrics:    MetricsWin,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) Option {
	return func(c *loadConfig) {
		c.parserName = name
	}
}

// WithMetrics selects the table that supplies ascent and descent.
// The default is MetricsWin.
func WithMetrics(src MetricsSource) Option {
	return func(c *loadConfig) {
		c.metrics = src
	}
}

package porter

// Query view defaults.
const (
	// DefaultDateLayout renders dates as year-month-day.
	DefaultDateLayout = "2006-01-02"

	// DefaultCharset is the IANA name of the default query charset.
	DefaultCharset = "UTF-8"
)

// QueryOption configures BeanToQueryString.
type QueryOption func(*queryConfig)

type queryConfig struct {
	dateLayout string
	charset    string
}

func newQueryConfig(opts []QueryOption) *queryConfig {
	cfg := &queryConfig{
		dateLayout: DefaultDateLayout,
		charset:    DefaultCharset,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithDateLayout sets the Go time layout used for time.Time values.
func WithDateLayout(layout string) QueryOption {
	return func(c *queryConfig) {
		c.dateLayout = layout
	}
}

// WithCharset sets the IANA charset values are encoded with before
// percent-encoding.
func WithCharset(name string) QueryOption {
	return func(c *queryConfig) {
		c.charset = name
	}
}

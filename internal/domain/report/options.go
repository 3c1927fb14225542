package report

import "time"

type options struct {
	topN     int
	location *time.Location
}

// Option configures Aggregate
type Option func(*options)

// WithTopN overrides the truncation limit. Values below 1 are ignored.
func WithTopN(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.topN = n
		}
	}
}

// WithLocation sets the time zone used for day buckets. Nil is ignored.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

func newOptions(opts []Option) options {
	o := options{topN: DefaultTopN, location: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

package mmcsv

// DefaultBlockSize is the target width of a mapped window. Open rounds it up to
// the platform mapping granularity.
const DefaultBlockSize = 16 << 20

type options struct {
	comma      byte
	quote      byte
	escape     byte
	blockSize  int
	maxRowSize int
}

func defaultOptions() options {
	return options{
		comma:     ',',
		quote:     '"',
		escape:    '\\',
		blockSize: DefaultBlockSize,
	}
}

// Option configures Open.
type Option func(*options)

// WithComma sets the field delimiter. Default is ','.
func WithComma(c byte) Option {
	return func(o *options) {
		o.comma = c
	}
}

// WithQuote sets the quote character. Default is '"'.
func WithQuote(q byte) Option {
	return func(o *options) {
		o.quote = q
	}
}

// WithEscape sets the escape character. Default is '\\'.
// The byte following an escape is always taken literally.
func WithEscape(e byte) Option {
	return func(o *options) {
		o.escape = e
	}
}

// WithBlockSize sets the target window size in bytes. Values <= 0 select
// DefaultBlockSize. The effective size is the smallest multiple of the
// platform mapping granularity that is >= n.
func WithBlockSize(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultBlockSize
		}
		o.blockSize = n
	}
}

// WithMaxRowSize bounds how many bytes a single row may accumulate while it
// spans windows. Zero (the default) means no limit.
func WithMaxRowSize(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.maxRowSize = n
	}
}

func (o *options) validate() error {
	special := [...]byte{o.comma, o.quote, o.escape}
	for i, c := range special {
		if c == '\n' || c == '\r' {
			return ErrInvalidDelimiter
		}
		for _, d := range special[i+1:] {
			if c == d {
				return ErrInvalidDelimiter
			}
		}
	}
	return nil
}

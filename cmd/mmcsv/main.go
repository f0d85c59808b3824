// Command mmcsv inspects large delimited-text files through memory-mapped windows.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/oleg578/mmcsv"
)

type config struct {
	comma     string
	quote     string
	escape    string
	blockSize string
	maxRow    string
	logLevel  string
	logFormat string

	log *Logger
}

var cfg config

var rootCmd = &cobra.Command{
	Use:           "mmcsv [command] (flags)",
	Short:         "memory-mapped CSV inspection tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLoggerFromFlags(cmd.ErrOrStderr(), cfg.logFormat, cfg.logLevel)
		if err != nil {
			return err
		}
		cfg.log = log
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.comma, "comma", ",", "field delimiter (single byte, or tab)")
	flags.StringVar(&cfg.quote, "quote", `"`, "quote character (single byte)")
	flags.StringVar(&cfg.escape, "escape", `\`, "escape character (single byte)")
	flags.StringVar(&cfg.blockSize, "block-size", "16MiB", "target window size")
	flags.StringVar(&cfg.maxRow, "max-row", "0", "maximum bytes a row may span across windows (0 = unlimited)")
	flags.StringVar(&cfg.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.logFormat, "log-format", "text", "log format (text or json)")

	rootCmd.AddCommand(countCmd, headCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mmcsv: %v\n", err)
		os.Exit(1)
	}
}

// options translates the global flags into reader options.
func (c *config) options() ([]mmcsv.Option, error) {
	comma, err := parseDialectByte("comma", c.comma)
	if err != nil {
		return nil, err
	}
	quote, err := parseDialectByte("quote", c.quote)
	if err != nil {
		return nil, err
	}
	escape, err := parseDialectByte("escape", c.escape)
	if err != nil {
		return nil, err
	}
	blockSize, err := parseSize("block-size", c.blockSize)
	if err != nil {
		return nil, err
	}
	maxRow, err := parseSize("max-row", c.maxRow)
	if err != nil {
		return nil, err
	}
	return []mmcsv.Option{
		mmcsv.WithComma(comma),
		mmcsv.WithQuote(quote),
		mmcsv.WithEscape(escape),
		mmcsv.WithBlockSize(blockSize),
		mmcsv.WithMaxRowSize(maxRow),
	}, nil
}

// parseSize parses a human-readable byte count such as "16MiB".
func parseSize(flag, s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, "--%s", flag)
	}
	if n > math.MaxInt {
		return 0, errors.Newf("--%s %s exceeds %d bytes", flag, s, math.MaxInt)
	}
	return int(n), nil
}

func parseDialectByte(flag, s string) (byte, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	if len(s) != 1 {
		return 0, errors.Newf("--%s must be a single byte, got %q", flag, s)
	}
	return s[0], nil
}

// openInput opens path with the global flags and logs the session boundaries.
// The returned finish func closes the reader and logs its counters.
func (c *config) openInput(path string) (*mmcsv.Reader, func() error, error) {
	opts, err := c.options()
	if err != nil {
		return nil, nil, err
	}
	r, err := mmcsv.Open(path, opts...)
	if err != nil {
		return nil, nil, err
	}

	log := c.log.WithFile(path)
	start := time.Now()
	st := r.Stats()
	log.Debug("opened", "size", humanize.IBytes(uint64(st.FileSize)), "block_size", humanize.IBytes(uint64(st.BlockSize)))

	finish := func() error {
		st := r.Stats()
		err := r.Close()
		log.Info("finished",
			"rows", st.Rows,
			"windows", st.Windows,
			"max_spill", humanize.IBytes(uint64(st.MaxSpill)),
			"elapsed", time.Since(start))
		return err
	}
	return r, finish, nil
}

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/oleg578/mmcsv"
)

const histogramMax = 1 << 40

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "report row width and field count distributions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := statsFile(args[0])
		if err != nil {
			return err
		}
		rep.render(cmd.OutOrStdout())
		return nil
	},
}

type report struct {
	rowBytes  *hdrhistogram.Histogram
	rowFields *hdrhistogram.Histogram
	reader    mmcsv.Stats
}

func newReport() *report {
	return &report{
		rowBytes:  hdrhistogram.New(1, histogramMax, 3),
		rowFields: hdrhistogram.New(1, histogramMax, 3),
	}
}

func (rep *report) record(width, fields int) error {
	if err := rep.rowBytes.RecordValue(int64(width)); err != nil {
		return errors.Wrapf(err, "row width %d", width)
	}
	if err := rep.rowFields.RecordValue(int64(fields)); err != nil {
		return errors.Wrapf(err, "field count %d", fields)
	}
	return nil
}

func statsFile(path string) (rep *report, err error) {
	r, finish, err := cfg.openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.CombineErrors(err, finish())
	}()

	rep = newReport()
	for {
		row, err := r.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		width, fields := len(row), 0
		for {
			if _, ok := r.ReadColumn(row); !ok {
				break
			}
			fields++
		}
		if err := rep.record(width, fields); err != nil {
			return nil, err
		}
	}
	rep.reader = r.Stats()
	return rep, nil
}

func (rep *report) render(w io.Writer) {
	st := rep.reader
	fmt.Fprintf(w, "file size:  %s\n", humanize.IBytes(uint64(st.FileSize)))
	fmt.Fprintf(w, "block size: %s\n", humanize.IBytes(uint64(st.BlockSize)))
	fmt.Fprintf(w, "windows:    %s\n", humanize.Comma(st.Windows))
	fmt.Fprintf(w, "rows:       %s\n", humanize.Comma(st.Rows))
	fmt.Fprintf(w, "max spill:  %s\n", humanize.IBytes(uint64(st.MaxSpill)))
	if st.Rows == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"metric", "min", "p50", "p99", "max", "mean"})
	for _, m := range []struct {
		name string
		h    *hdrhistogram.Histogram
	}{
		{"row bytes", rep.rowBytes},
		{"fields", rep.rowFields},
	} {
		table.Append([]string{
			m.name,
			strconv.FormatInt(m.h.Min(), 10),
			strconv.FormatInt(m.h.ValueAtQuantile(50), 10),
			strconv.FormatInt(m.h.ValueAtQuantile(99), 10),
			strconv.FormatInt(m.h.Max(), 10),
			strconv.FormatFloat(m.h.Mean(), 'f', 1, 64),
		})
	}
	table.Render()
}

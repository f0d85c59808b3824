package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var headOpts struct {
	rows     int
	noHeader bool
}

var headCmd = &cobra.Command{
	Use:   "head <file>",
	Short: "print the first records as a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if headOpts.rows < 0 {
			return errors.Newf("-n must not be negative, got %d", headOpts.rows)
		}
		header, records, err := headFile(args[0], headOpts.rows, !headOpts.noHeader)
		if err != nil {
			return err
		}
		renderTable(cmd.OutOrStdout(), header, records)
		return nil
	},
}

func init() {
	headCmd.Flags().IntVarP(&headOpts.rows, "rows", "n", 10, "number of records to print")
	headCmd.Flags().BoolVar(&headOpts.noHeader, "no-header", false, "treat the first row as data")
}

// headFile reads up to n records after the optional header row.
func headFile(path string, n int, withHeader bool) (header []string, records [][]string, err error) {
	r, finish, err := cfg.openInput(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		err = errors.CombineErrors(err, finish())
	}()
	r.FieldsPerRecord = -1

	if withHeader {
		header, err = r.Read()
		if err == io.EOF {
			return nil, nil, nil
		}
		if err != nil {
			return nil, nil, err
		}
	}
	for len(records) < n {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return header, records, err
		}
		records = append(records, record)
	}
	return header, records, nil
}

// renderTable pads every row to the widest record so ragged input stays aligned.
func renderTable(w io.Writer, header []string, records [][]string) {
	width := len(header)
	for _, record := range records {
		width = max(width, len(record))
	}
	if width == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	if header != nil {
		table.SetHeader(pad(header, width))
	}
	for _, record := range records {
		table.Append(pad(record, width))
	}
	table.Render()
}

func pad(record []string, width int) []string {
	if len(record) >= width {
		return record
	}
	out := make([]string, width)
	copy(out, record)
	return out
}

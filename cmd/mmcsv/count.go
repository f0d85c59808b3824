package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count <file>",
	Short: "count rows and fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, fields, err := countFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rows: %d\nfields: %d\n", rows, fields)
		return nil
	},
}

func countFile(path string) (rows, fields int64, err error) {
	r, finish, err := cfg.openInput(path)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		err = errors.CombineErrors(err, finish())
	}()

	for {
		row, err := r.ReadRow()
		if err == io.EOF {
			return rows, fields, nil
		}
		if err != nil {
			return rows, fields, err
		}
		rows++
		for {
			if _, ok := r.ReadColumn(row); !ok {
				break
			}
			fields++
		}
	}
}

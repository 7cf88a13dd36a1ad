package screen

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// RenderText writes v as a terminal table, or its loading or empty-state
// line when there are no rows.
func RenderText(w io.Writer, v View) error {
	switch {
	case v.Loading:
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	case len(v.Rows) == 0:
		if _, err := fmt.Fprintln(w, v.EmptyText); err != nil {
			return err
		}
		if v.RetryVisible {
			_, err := fmt.Fprintln(w, "Retry: run the command again.")
			return err
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMAG\tSEVERITY\tOFFSET\tLOCATION\tDATE\tTIME")
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Index, r.Magnitude, r.Severity, r.Offset, r.Primary, r.Date, r.Time)
	}
	return tw.Flush()
}

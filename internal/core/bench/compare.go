package bench

import (
	"fmt"
	"io"
	"time"
)

// WriteComparison prints a side-by-side table of path summaries. The Ratio
// column is each path's mean relative to the fastest mean.
func WriteComparison(w io.Writer, reports []PathReport) error {
	if len(reports) == 0 {
		return ErrNoPaths
	}

	fastest := reports[0].Summary.Mean
	for _, r := range reports[1:] {
		fastest = min(fastest, r.Summary.Mean)
	}

	if _, err := fmt.Fprintf(w, "%-20s %-12s %-12s %-12s %-10s %-8s\n",
		"Path", "Min", "Mean", "Max", "Failures", "Ratio"); err != nil {
		return err
	}
	for _, r := range reports {
		s := r.Summary
		if _, err := fmt.Fprintf(w, "%-20s %-12s %-12s %-12s %-10d %-8s\n",
			r.Path,
			s.Min.Round(time.Microsecond),
			s.Mean.Round(time.Microsecond),
			s.Max.Round(time.Microsecond),
			s.Failures,
			ratio(s.Mean, fastest),
		); err != nil {
			return err
		}
	}
	return nil
}

func ratio(d, fastest time.Duration) string {
	if fastest <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1fx", float64(d)/float64(fastest))
}

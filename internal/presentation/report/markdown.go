package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jdahm/lattice/pkg/bench"
	"github.com/jdahm/lattice/pkg/ports"
)

// Comparison produces a markdown document from a benchmark report.
// The speedup column is relative to the baseline backend.
func Comparison(rep *bench.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Backend comparison: %s\n\n", rep.Scenario)
	fmt.Fprintf(&sb, "%d interior points, %d steps, baseline `%s`.\n\n", rep.Points, rep.Steps, rep.Baseline)

	sb.WriteString("| Backend | Mean | Std dev | Min | Max | MLUP/s | Speedup | Max diff |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|\n")

	var baseMean time.Duration
	for _, r := range rep.Results {
		if r.Backend == rep.Baseline {
			baseMean = r.Mean
		}
	}

	for _, r := range rep.Results {
		speedup := "n/a"
		if baseMean > 0 && r.Mean > 0 {
			speedup = fmt.Sprintf("%.2fx", float64(baseMean)/float64(r.Mean))
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %.1f | %s | %.2e |\n",
			r.Backend,
			fmtDuration(r.Mean),
			fmtDuration(r.StdDev),
			fmtDuration(r.Min),
			fmtDuration(r.Max),
			r.MLUPS,
			speedup,
			r.MaxDiff,
		)
	}

	return sb.String()
}

// Run produces a markdown document from a single run record.
func Run(rec ports.RunRecord) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Run %s\n\n", rec.ID)
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|---|---|\n")
	fmt.Fprintf(&sb, "| Scenario | %s |\n", rec.Scenario)
	fmt.Fprintf(&sb, "| Backend | %s |\n", rec.Backend)
	fmt.Fprintf(&sb, "| Grid | %dx%dx%d, halo %d |\n", rec.NX, rec.NY, rec.NZ, rec.Halo)
	fmt.Fprintf(&sb, "| Params | %s |\n", rec.Params)
	fmt.Fprintf(&sb, "| Steps | %d |\n", rec.Steps)
	fmt.Fprintf(&sb, "| Checksum | %.6g |\n", rec.Checksum)
	fmt.Fprintf(&sb, "| Max value | %.6g |\n", rec.MaxValue)
	fmt.Fprintf(&sb, "| Elapsed | %s |\n", fmtDuration(rec.Elapsed))
	fmt.Fprintf(&sb, "| Started | %s |\n", rec.StartedAt.Format(time.RFC3339))

	return sb.String()
}

// Runs produces a markdown table listing stored run records.
func Runs(recs []ports.RunRecord) string {
	if len(recs) == 0 {
		return "No stored runs.\n"
	}

	var sb strings.Builder

	sb.WriteString("# Stored runs\n\n")
	sb.WriteString("| ID | Scenario | Backend | Grid | Steps | Elapsed | Started |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")

	for _, rec := range recs {
		fmt.Fprintf(&sb, "| %s | %s | %s | %dx%dx%d | %d | %s | %s |\n",
			rec.ID,
			rec.Scenario,
			rec.Backend,
			rec.NX, rec.NY, rec.NZ,
			rec.Steps,
			fmtDuration(rec.Elapsed),
			rec.StartedAt.Format(time.RFC3339),
		)
	}

	return sb.String()
}

func fmtDuration(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}

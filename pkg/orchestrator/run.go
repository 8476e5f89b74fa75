package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/ecoviz/go-exportgen/pkg/exportcfg"
	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// Status classifies the outcome of one entry.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Result is the outcome of one configured entry. Exactly one of Artifact or
// Err is populated for success and failure respectively.
type Result struct {
	Index    int
	Entry    exportcfg.Entry
	Status   Status
	Artifact *plugin.Artifact
	Err      error
}

// ExportRun is the complete outcome of one orchestrator invocation. Results
// hold one slot per configured entry, in declared order; partial success is
// the normal case.
type ExportRun struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// Succeeded counts entries that produced an artifact.
func (r *ExportRun) Succeeded() int { return r.count(StatusSuccess) }

// Failed counts entries that errored.
func (r *ExportRun) Failed() int { return r.count(StatusFailed) }

// Cancelled counts entries that never ran because the context ended.
func (r *ExportRun) Cancelled() int { return r.count(StatusCancelled) }

func (r *ExportRun) count(status Status) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// Summary renders a one-line-per-entry report of the run.
func (r *ExportRun) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s: %d succeeded, %d failed, %d cancelled\n",
		r.ID, r.Succeeded(), r.Failed(), r.Cancelled())
	for _, result := range r.Results {
		fmt.Fprintf(&b, "  [%d] %s %s (%s): ", result.Index, result.Entry.Kind, result.Entry.Plugin, result.Entry.DataSource)
		switch result.Status {
		case StatusSuccess:
			if result.Artifact != nil && result.Artifact.TargetPath != "" {
				fmt.Fprintf(&b, "ok -> %s\n", result.Artifact.TargetPath)
			} else {
				b.WriteString("ok\n")
			}
		case StatusCancelled:
			b.WriteString("cancelled\n")
		default:
			fmt.Fprintf(&b, "failed: %v\n", result.Err)
		}
	}
	return b.String()
}

package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"time"
)

// Status is the outcome of one stage.
type Status byte

const (
	StatusOK Status = iota
	StatusFailed
	StatusSkipped
)

var statusNames = [...]string{
	StatusOK:      "ok",
	StatusFailed:  "failed",
	StatusSkipped: "skipped",
}

// String returns the string representation of this Status.
func (st Status) String() string {
	if int(st) < len(statusNames) {
		return statusNames[st]
	}
	return fmt.Sprintf("Status(%d)", byte(st))
}

var _ fmt.Stringer = Status(0)

// StageResult records what happened to one stage.
type StageResult struct {
	Name     string
	Status   Status
	Summary  string
	Err      error
	Duration time.Duration
}

// Report is the result of a pipeline run.
type Report struct {
	RunID  string
	Stages []StageResult
	State  *State
}

// Stage returns the result for the named stage.
func (r *Report) Stage(name string) (StageResult, bool) {
	for _, result := range r.Stages {
		if result.Name == name {
			return result, true
		}
	}
	return StageResult{}, false
}

// Errors lists the messages of every failed stage, in order.
func (r *Report) Errors() []string {
	var out []string
	for _, result := range r.Stages {
		if result.Err != nil {
			out = append(out, result.Err.Error())
		}
	}
	return out
}

// OK returns true iff every stage succeeded.
func (r *Report) OK() bool {
	for _, result := range r.Stages {
		if result.Status != StatusOK {
			return false
		}
	}
	return true
}

// WriteTo writes a human-readable report: one block per stage, followed by
// the list of errors if there were any.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for index, result := range r.Stages {
		fmt.Fprintf(&buf, "Stage %d: %s [%s]\n", index+1, result.Name, result.Status)
		if result.Summary != "" {
			fmt.Fprintf(&buf, "\t%s\n", result.Summary)
		}
	}
	if errs := r.Errors(); len(errs) != 0 {
		buf.WriteString("\nErrors:\n")
		for _, msg := range errs {
			fmt.Fprintf(&buf, "\t%s\n", msg)
		}
	}
	return buf.WriteTo(w)
}

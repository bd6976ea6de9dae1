package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"reposetup/internal/step"
)

var (
	appliedColor = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed)
	skippedColor = color.New(color.FgYellow)
)

func colorizeStatus(s step.Status) string {
	switch s {
	case step.StatusApplied:
		return appliedColor.Sprint(string(s))
	case step.StatusFailed:
		return failedColor.Sprint(string(s))
	case step.StatusSkipped:
		return skippedColor.Sprint(string(s))
	default:
		return string(s)
	}
}

type ConsoleSink struct {
	writer  io.Writer
	format  string // "text", "json", "ndjson"
	mu      sync.Mutex
	results []step.Result // For JSON array output
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	return &ConsoleSink{
		writer: w,
		format: format,
	}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	switch s.format {
	case "json":
		r, ok := v.(step.Result)
		if !ok {
			// Ignore lifecycle events in JSON console mode.
			return nil
		}
		s.results = append(s.results, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case step.Result:
			e := eventFromResult(t)
			if err := encoder.Encode(e); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		r, ok := v.(step.Result)
		if !ok {
			// Ignore events in text mode.
			return nil
		}
		if _, err := fmt.Fprintf(s.writer, "[%s] %s: %s", colorizeStatus(r.Status), r.Repo, r.StepID); err != nil {
			return err
		}
		if r.Message != "" {
			if _, err := fmt.Fprintf(s.writer, " - %s", r.Message); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(s.writer); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.results); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}

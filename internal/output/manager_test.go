package output

import (
	"errors"
	"strings"
	"testing"

	"reposetup/internal/step"
)

type recordSink struct {
	writes   []any
	writeErr error
	closed   bool
	closeErr error
}

func (s *recordSink) Write(v any) error {
	s.writes = append(s.writes, v)
	return s.writeErr
}

func (s *recordSink) Close() error {
	s.closed = true
	return s.closeErr
}

func TestManager_FansOutToAllSinks(t *testing.T) {
	m := NewManager()
	a := &recordSink{}
	b := &recordSink{}
	if err := m.AddSink(a); err != nil {
		t.Fatalf("AddSink: %v", err)
	}
	if err := m.AddSink(b); err != nil {
		t.Fatalf("AddSink: %v", err)
	}

	r := step.Result{StepID: "labels", Status: step.StatusApplied}
	if err := m.Write(r); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(a.writes) != 1 || len(b.writes) != 1 {
		t.Errorf("writes = %d/%d, want 1/1", len(a.writes), len(b.writes))
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("not all sinks closed")
	}
}

func TestManager_WriteErrorDoesNotStopOtherSinks(t *testing.T) {
	m := NewManager()
	bad := &recordSink{writeErr: errors.New("disk full")}
	good := &recordSink{}
	_ = m.AddSink(bad)
	_ = m.AddSink(good)

	err := m.Write(step.Result{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("unexpected error: %v", err)
	}
	if len(good.writes) != 1 {
		t.Error("second sink skipped after first sink's error")
	}
}

func TestManager_RejectsNilSink(t *testing.T) {
	m := NewManager()
	if err := m.AddSink(nil); err == nil {
		t.Error("expected error for nil sink")
	}
}

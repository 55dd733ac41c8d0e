package iodriver

import (
	"os"
	"testing"
	"time"
)

func TestWaitReportsReadablePipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	d, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	if err := d.Add(int(r.Fd()), Readable); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if events, err := d.Wait(50*time.Millisecond, nil); err != nil {
		t.Fatalf("Wait: %v", err)
	} else if len(events) != 0 {
		t.Fatalf("expected no events before any write, got %v", events)
	}

	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	events, err := d.Wait(time.Second, nil)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(events) != 1 || events[0].FD != int(r.Fd()) || !events[0].Readable {
		t.Fatalf("expected one readable event for the pipe fd, got %v", events)
	}
}

func TestRemoveStopsReporting(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	d, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	if err := d.Add(int(r.Fd()), Readable); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := d.Remove(int(r.Fd())); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	events, err := d.Wait(50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events after Remove, got %v", events)
	}
}

func TestModifyChangesInterest(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	d, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	// Writable pipes are always writable; registering for Writable only
	// should report immediately without any reader-side activity.
	if err := d.Add(int(w.Fd()), Writable); err != nil {
		t.Fatalf("Add: %v", err)
	}
	events, err := d.Wait(time.Second, nil)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(events) != 1 || !events[0].Writable {
		t.Fatalf("expected one writable event, got %v", events)
	}

	if err := d.Modify(int(w.Fd()), Readable); err != nil {
		t.Fatalf("Modify: %v", err)
	}
	events, err = d.Wait(50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no readable events on a write-only pipe end, got %v", events)
	}
}

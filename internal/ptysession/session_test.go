//go:build unix

package ptysession

import (
	"bytes"
	"testing"
	"time"
)

func collectOutput(s *Session, deadline time.Duration) []byte {
	var out bytes.Buffer
	timer := time.NewTimer(deadline)
	defer timer.Stop()
	for {
		select {
		case chunk, ok := <-s.Output():
			if !ok {
				return out.Bytes()
			}
			out.Write(chunk)
		case <-timer.C:
			return out.Bytes()
		}
	}
}

func TestStartEchoesOutputInOrder(t *testing.T) {
	s, err := Start([]string{"sh", "-c", "printf 'one\\ntwo\\nthree\\n'"}, Options{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	out := string(collectOutput(s, 5*time.Second))
	for _, want := range []string{"one", "two", "three"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if bytes.Index([]byte(out), []byte("one")) > bytes.Index([]byte(out), []byte("three")) {
		t.Error("chunks reordered")
	}
}

func TestSendInputReachesChild(t *testing.T) {
	s, err := Start([]string{"cat"}, Options{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	if !s.SendInput([]byte("hello pty\n")) {
		t.Fatal("SendInput refused")
	}

	deadline := time.After(5 * time.Second)
	var out bytes.Buffer
	for !bytes.Contains(out.Bytes(), []byte("hello pty")) {
		select {
		case chunk, ok := <-s.Output():
			if !ok {
				t.Fatalf("output closed early, got %q", out.String())
			}
			out.Write(chunk)
		case <-deadline:
			t.Fatalf("echo never arrived, got %q", out.String())
		}
	}
}

func TestExtraEnvOverrides(t *testing.T) {
	s, err := Start([]string{"sh", "-c", "printf '%s' \"$VOICETERM_MARK\""}, Options{Rows: 24, Cols: 80,
		ExtraEnv: map[string]string{"VOICETERM_MARK": "mark-42"}})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	out := collectOutput(s, 5*time.Second)
	if !bytes.Contains(out, []byte("mark-42")) {
		t.Errorf("env override missing from output %q", out)
	}
}

func TestOutputClosesOnChildExit(t *testing.T) {
	s, err := Start([]string{"true"}, Options{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-s.Output():
			if !ok {
				return // closed, as expected
			}
		case <-deadline:
			t.Fatal("output channel never closed after child exit")
		}
	}
}

func TestCloseTerminatesStubbornChild(t *testing.T) {
	// The child ignores SIGTERM, forcing the grace-then-SIGKILL path.
	s, err := Start([]string{"sh", "-c", "trap '' TERM; sleep 60"}, Options{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	start := time.Now()
	if err := s.Close(); err != nil {
		t.Logf("Close: %v (pty close errors are tolerated)", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Close took %v, SIGKILL fallback too slow", elapsed)
	}
	exited, _ := s.Exited()
	if !exited {
		t.Error("child not reaped after Close")
	}
}

func TestTryRecvOutputNonBlocking(t *testing.T) {
	s, err := Start([]string{"sleep", "2"}, Options{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	start := time.Now()
	_, ok, closed := s.TryRecvOutput()
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("TryRecvOutput blocked for %v", elapsed)
	}
	if ok || closed {
		t.Errorf("TryRecvOutput on a quiet child = ok=%v closed=%v", ok, closed)
	}
}

func TestOSCColorQueryAnswered(t *testing.T) {
	// The child asks for the background color, then echoes back whatever
	// the session answers on its stdin.
	s, err := Start([]string{"sh", "-c", "printf '\\033]11;?\\007'; cat"},
		Options{Rows: 24, Cols: 80, OscBg: "rgb:1e1e/1e1e/1e1e"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	deadline := time.After(5 * time.Second)
	var out bytes.Buffer
	for !bytes.Contains(out.Bytes(), []byte("]11;rgb:1e1e/1e1e/1e1e")) {
		select {
		case chunk, ok := <-s.Output():
			if !ok {
				t.Fatalf("output closed, got %q", out.String())
			}
			out.Write(chunk)
		case <-deadline:
			t.Fatalf("OSC reply never echoed, got %q", out.String())
		}
	}
}

func TestResizePropagates(t *testing.T) {
	s, err := Start([]string{"sleep", "2"}, Options{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	if err := s.Resize(40, 120); err != nil {
		t.Errorf("Resize: %v", err)
	}
}

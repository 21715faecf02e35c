package writer

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/midterm"

	"voiceterm/internal/overlay"
	"voiceterm/internal/theme"
)

// syncBuffer is a goroutine-safe output sink for the writer under test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, b.buf.Len())
	copy(out, b.buf.Bytes())
	return out
}

func shutdownAndWait(t *testing.T, w *Writer) {
	t.Helper()
	require.NoError(t, w.Send(Shutdown{}))
	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("writer did not shut down")
	}
}

// screen renders the writer's emitted bytes through a virtual terminal so
// tests assert on what the user would actually see.
func screen(t *testing.T, out []byte, rows, cols int) *midterm.Terminal {
	t.Helper()
	vt := midterm.NewTerminal(rows, cols)
	_, err := vt.Write(out)
	require.NoError(t, err)
	return vt
}

func rowText(vt *midterm.Terminal, row int) string {
	if row >= len(vt.Content) {
		return ""
	}
	return strings.TrimRight(string(vt.Content[row]), " ")
}

func TestPtyBytesPassThroughVerbatim(t *testing.T) {
	out := &syncBuffer{}
	w := New(out, 24, 80)

	chunks := [][]byte{
		[]byte("plain text "),
		[]byte("\x1b[31mcolored\x1b[0m"),
		[]byte("\r\npartial esc \x1b["),
		[]byte("32m continued"),
	}
	var want bytes.Buffer
	for _, c := range chunks {
		require.NoError(t, w.Send(PtyOutput{Bytes: c}))
		want.Write(c)
	}
	shutdownAndWait(t, w)

	got := out.Bytes()
	assert.True(t, bytes.Contains(got, want.Bytes()),
		"PTY chunks must appear contiguously and unmodified in output")
}

func TestStatusLandsInReservedStrip(t *testing.T) {
	out := &syncBuffer{}
	w := New(out, 10, 40)

	require.NoError(t, w.Send(ReserveRows{N: 3}))
	require.NoError(t, w.Send(PtyOutput{Bytes: []byte("child says hi")}))
	require.NoError(t, w.Send(Status{Text: "VOICE READY"}))
	shutdownAndWait(t, w)

	// Replay everything but the final shutdown clear, which blanks the strip.
	raw := out.Bytes()
	cut := bytes.LastIndex(raw, []byte("\x1b7"))
	vt := screen(t, raw[:cut], 10, 40)

	// Reserved strip starts at row 8 (1-based) = index 7.
	assert.Equal(t, "VOICE READY", rowText(vt, 7))
	assert.Contains(t, rowText(vt, 0), "child says hi")
}

func TestStatusSanitizedAndClipped(t *testing.T) {
	out := &syncBuffer{}
	w := New(out, 10, 12)

	require.NoError(t, w.Send(ReserveRows{N: 1}))
	require.NoError(t, w.Send(Status{Text: "bad\x07beep and far too long for twelve columns"}))
	shutdownAndWait(t, w)

	raw := out.Bytes()
	assert.NotContains(t, string(raw), "\x07", "control chars must not reach the terminal")
	cut := bytes.LastIndex(raw, []byte("\x1b7"))
	vt := screen(t, raw[:cut], 10, 12)
	assert.LessOrEqual(t, len(rowText(vt, 9)), 12)
}

func TestDrawAndClearOverlay(t *testing.T) {
	out := &syncBuffer{}
	w := New(out, 12, 60)

	frame := overlay.RenderHelp(theme.None(), 60)
	require.NoError(t, w.Send(ReserveRows{N: frame.Height()}))
	require.NoError(t, w.Send(DrawOverlay{Frame: frame}))
	shutdownAndWait(t, w)

	raw := out.Bytes()
	cut := bytes.LastIndex(raw, []byte("\x1b7"))
	vt := screen(t, raw[:cut], 12, 60)
	var joined strings.Builder
	for i := 0; i < 12; i++ {
		joined.WriteString(rowText(vt, i))
		joined.WriteByte('\n')
	}
	assert.Contains(t, joined.String(), "VoiceTerm Help")
}

func TestSuppressionHidesStatus(t *testing.T) {
	out := &syncBuffer{}
	w := New(out, 10, 40)

	require.NoError(t, w.Send(ReserveRows{N: 3}))
	require.NoError(t, w.Send(SetSuppressed{On: true}))
	require.NoError(t, w.Send(Status{Text: "HIDDEN"}))
	shutdownAndWait(t, w)

	vt := screen(t, out.Bytes(), 10, 40)
	for i := 0; i < 10; i++ {
		assert.NotContains(t, rowText(vt, i), "HIDDEN",
			"status must not render while suppressed (row %d)", i)
	}
}

func TestScrollRegionFollowsReservation(t *testing.T) {
	out := &syncBuffer{}
	w := New(out, 24, 80)

	require.NoError(t, w.Send(ReserveRows{N: 3}))
	require.NoError(t, w.Send(SetSuppressed{On: true}))
	require.NoError(t, w.Send(SetSuppressed{On: false}))
	shutdownAndWait(t, w)

	s := string(out.Bytes())
	assert.Contains(t, s, "\x1b[1;21r", "region should shrink to rows 1..21")
	assert.Contains(t, s, "\x1b[r", "suppression should widen the region fully")
}

// gatedWriter blocks every Write until the gate opens, stalling the writer
// goroutine so the queue can fill.
type gatedWriter struct {
	gate chan struct{}
	sink syncBuffer
}

func (g *gatedWriter) Write(p []byte) (int, error) {
	<-g.gate
	return g.sink.Write(p)
}

func TestTrySendReportsFull(t *testing.T) {
	g := &gatedWriter{gate: make(chan struct{})}
	w := New(g, 24, 80)

	// The goroutine is stuck on its initial scroll-region write; fill the
	// queue until TrySend refuses.
	var sawFull bool
	for i := 0; i < queueDepth+8; i++ {
		if err := w.TrySend(PtyOutput{Bytes: []byte("x")}); err != nil {
			require.ErrorIs(t, err, ErrFull)
			sawFull = true
			break
		}
	}
	assert.True(t, sawFull, "queue never reported Full")

	close(g.gate)
	shutdownAndWait(t, w)
}

func TestTrySendAfterShutdownReportsClosed(t *testing.T) {
	out := &syncBuffer{}
	w := New(out, 24, 80)
	shutdownAndWait(t, w)

	assert.ErrorIs(t, w.TrySend(PtyOutput{Bytes: []byte("x")}), ErrClosed)
	assert.ErrorIs(t, w.Send(Status{Text: "x"}), ErrClosed)
}

func TestResizeReappliesRegion(t *testing.T) {
	out := &syncBuffer{}
	w := New(out, 24, 80)
	require.NoError(t, w.Send(ReserveRows{N: 3}))
	require.NoError(t, w.Send(Resize{Rows: 40, Cols: 100}))
	shutdownAndWait(t, w)
	assert.Contains(t, string(out.Bytes()), "\x1b[1;37r")
}

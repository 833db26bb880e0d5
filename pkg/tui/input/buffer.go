// ABOUTME: StdinBuffer reads raw bytes from an io.Reader and dispatches parsed key, mouse and focus events.
// ABOUTME: Holds partial escape sequences across reads; a lone ESC becomes Escape after a short quiet period.

package input

import (
	"context"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
)

const (
	readBufSize  = 256
	escTimeout   = 50 * time.Millisecond
	bracketStart = "\x1b[200~"
	bracketEnd   = "\x1b[201~"
)

// StdinBuffer reads from a reader and dispatches parsed key events via onKey.
// All dispatch happens on the goroutine that calls Start.
type StdinBuffer struct {
	reader  io.Reader
	onKey   func(key.Key)
	pending []byte
}

// NewStdinBuffer creates a StdinBuffer that reads from r and calls onKey for each parsed key.
func NewStdinBuffer(r io.Reader, onKey func(key.Key)) *StdinBuffer {
	return &StdinBuffer{
		reader:  r,
		onKey:   onKey,
		pending: make([]byte, 0, readBufSize),
	}
}

// Start reads from the underlying reader until ctx is cancelled or the reader returns an error.
// It blocks until completion; call it in a goroutine if non-blocking behavior is needed.
func (b *StdinBuffer) Start(ctx context.Context) {
	reads := make(chan []byte)
	done := make(chan struct{})
	go b.readLoop(reads, done)
	defer close(done)

	var quiet <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-reads:
			if !ok {
				b.flush()
				return
			}
			b.pending = append(b.pending, data...)
			b.drain()
			quiet = nil
			if len(b.pending) > 0 {
				quiet = time.After(escTimeout)
			}
		case <-quiet:
			quiet = nil
			b.flush()
		}
	}
}

// readLoop forwards reads on ch until the reader fails or done is closed.
func (b *StdinBuffer) readLoop(ch chan<- []byte, done <-chan struct{}) {
	defer close(ch)
	tmp := make([]byte, readBufSize)
	for {
		n, err := b.reader.Read(tmp)
		if n > 0 {
			data := make([]byte, n)
			copy(data, tmp[:n])
			select {
			case ch <- data:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// drain dispatches every complete event at the front of pending and keeps
// the unfinished tail.
func (b *StdinBuffer) drain() {
	for len(b.pending) > 0 {
		n, k, emit := next(string(b.pending))
		if n == 0 {
			break
		}
		b.pending = b.pending[n:]
		if emit {
			b.onKey(k)
		}
	}
}

// flush resolves whatever is still pending once no more input is coming.
// A lone ESC (or ESC plus one byte) is a key; anything longer is dropped.
func (b *StdinBuffer) flush() {
	b.drain()
	if n := len(b.pending); n > 0 && n <= 2 {
		if k := key.ParseKey(string(b.pending)); k.Type != key.KeyUnknown {
			b.onKey(k)
		}
	}
	b.pending = b.pending[:0]
}

// next decodes one event from the front of data. n is 0 when data is an
// incomplete prefix. emit is false for bytes that are consumed silently.
func next(data string) (n int, k key.Key, emit bool) {
	if strings.HasPrefix(data, bracketStart) {
		end := strings.Index(data[len(bracketStart):], bracketEnd)
		if end < 0 {
			return 0, k, false
		}
		return len(bracketStart) + end + len(bracketEnd), k, false
	}

	if data[0] == 0x1b {
		return nextEscape(data)
	}

	if !utf8.FullRuneInString(data) {
		return 0, k, false
	}
	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError && size == 1 {
		return 1, k, false
	}
	k = key.ParseKey(data[:size])
	return size, k, k.Type != key.KeyUnknown
}

func nextEscape(data string) (int, key.Key, bool) {
	n := key.SequenceLen(data)
	if n == 0 {
		if key.Stale(data) {
			return len(data), key.Key{}, false
		}
		return 0, key.Key{}, false
	}

	k := key.ParseKey(data[:n])
	if k.Type != key.KeyUnknown {
		return n, k, true
	}
	if data[1] == '[' || data[1] == 'O' {
		return n, k, false
	}
	// ESC followed by a control byte: report Escape and parse the byte on its own.
	return 1, key.Key{Type: key.KeyEscape}, true
}

package cobs

import (
	"bytes"

	"go.uber.org/zap"

	"github.com/wippyai/postcard/errors"
)

// Accumulator reassembles stuffed frames from a byte stream delivered in
// arbitrary chunks. Its buffer has a fixed capacity; a frame that does not
// fit is dropped up to its delimiter and reported once.
type Accumulator struct {
	buf      []byte
	idx      int
	overflow bool
}

// NewAccumulator returns an Accumulator holding stuffed frames of at most
// capacity bytes, excluding the delimiter.
func NewAccumulator(capacity int) *Accumulator {
	return &Accumulator{buf: make([]byte, capacity)}
}

// Feed consumes data until it completes a frame. It returns the destuffed
// frame and the bytes of data not yet consumed; callers loop until rest is
// empty. A nil frame with nil error means data ran out mid-frame. The frame
// aliases the Accumulator's buffer and is valid until the next call.
//
// Oversized frames fail with an Overflow error, malformed ones with
// BadEncoding. In both cases the Accumulator is ready for the next frame.
// Empty frames (consecutive delimiters) are skipped.
func (a *Accumulator) Feed(data []byte) (frame, rest []byte, err error) {
	for len(data) > 0 {
		i := bytes.IndexByte(data, Delimiter)
		if i < 0 {
			a.push(data)
			return nil, nil, nil
		}
		a.push(data[:i])
		data = data[i+1:]

		if a.overflow {
			a.reset()
			Logger().Debug("dropped oversized frame", zap.Int("capacity", len(a.buf)))
			return nil, data, errors.New(errors.PhaseFrame, errors.KindOverflow).
				Detail("frame exceeds %d byte buffer", len(a.buf)).
				Build()
		}
		if a.idx == 0 {
			continue
		}

		n, err := DecodeInPlace(a.buf[:a.idx])
		a.reset()
		if err != nil {
			Logger().Debug("dropped malformed frame", zap.Error(err))
			return nil, data, err
		}
		return a.buf[:n], data, nil
	}
	return nil, nil, nil
}

// Pending returns the number of buffered bytes of the current frame.
func (a *Accumulator) Pending() int { return a.idx }

// Reset discards any partial frame.
func (a *Accumulator) Reset() { a.reset() }

func (a *Accumulator) push(p []byte) {
	if a.overflow {
		return
	}
	if len(p) > len(a.buf)-a.idx {
		a.overflow = true
		return
	}
	a.idx += copy(a.buf[a.idx:], p)
}

func (a *Accumulator) reset() {
	a.idx = 0
	a.overflow = false
}

// ScanFrames is a bufio.SplitFunc yielding stuffed frames without their
// delimiter. Tokens may be empty; destuff them with DecodeInPlace. A
// trailing frame without a delimiter is returned at EOF.
func ScanFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, Delimiter); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

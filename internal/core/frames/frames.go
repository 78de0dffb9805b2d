// Package frames holds the deterministic frame arithmetic shared by the
// dataset jobs: elapsed-time to frame conversion, usable-range clamping, and
// N-way partitioning of a video's usable span
package frames

import "math"

// Span is an inclusive frame range [Begin, End]
type Span struct {
	Begin int
	End   int
}

// Len returns the number of frames covered by the span
func (s Span) Len() int { return s.End - s.Begin + 1 }

// At converts an elapsed time in seconds to an absolute frame index
// frame = round(seconds*fps) + startingFrame
func At(seconds, fps float64, startingFrame int) int {
	return int(math.Round(seconds*fps)) + startingFrame
}

// UsableBound returns the highest frame index usable for a video once the end
// buffer is excluded: frameCount - 1 - endFrameBuffer. May be negative when
// the buffer swallows the whole video
func UsableBound(frameCount, endFrameBuffer int) int {
	return frameCount - 1 - endFrameBuffer
}

// Partition divides the usable range of a video into n contiguous, ordered,
// disjoint inclusive spans starting at startFrame and ending at the usable
// bound. The range holds frameCount - endFrameBuffer - startFrame frames;
// each split gets the integer share and the remainder folds into the final
// span. Zero-length spans are omitted, so a short video yields fewer than n
// spans. Returns nil when the usable range is empty
func Partition(frameCount, startFrame, endFrameBuffer, n int) []Span {
	if n <= 0 {
		return nil
	}
	usable := frameCount - endFrameBuffer - startFrame
	if usable <= 0 {
		return nil
	}
	size := usable / n
	out := make([]Span, 0, n)
	for i := 0; i < n; i++ {
		begin := startFrame + i*size
		end := begin + size - 1
		if i == n-1 {
			end = startFrame + usable - 1
		}
		if end < begin {
			continue
		}
		out = append(out, Span{Begin: begin, End: end})
	}
	return out
}

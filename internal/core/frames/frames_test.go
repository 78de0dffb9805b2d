package frames

import "testing"

func TestAt_Table(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		fps     float64
		start   int
		want    int
	}{
		{name: "one second at 10fps", seconds: 1.0, fps: 10, start: 0, want: 10},
		{name: "three seconds at 10fps", seconds: 3.0, fps: 10, start: 0, want: 30},
		{name: "zero elapsed", seconds: 0, fps: 25, start: 0, want: 0},
		{name: "offset added", seconds: 2.0, fps: 25, start: 5, want: 55},
		{name: "rounds half up", seconds: 0.5, fps: 25, start: 0, want: 13},
		{name: "rounds down", seconds: 0.49, fps: 25, start: 0, want: 12},
		{name: "fractional fps", seconds: 10, fps: 29.97, start: 0, want: 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := At(tc.seconds, tc.fps, tc.start)
			if got != tc.want {
				t.Fatalf("At(%v, %v, %d) = %d, want %d", tc.seconds, tc.fps, tc.start, got, tc.want)
			}
			// deterministic
			if again := At(tc.seconds, tc.fps, tc.start); again != got {
				t.Fatalf("At not deterministic: %d then %d", got, again)
			}
			if got < 0 {
				t.Fatalf("At returned negative frame %d for valid input", got)
			}
		})
	}
}

func TestUsableBound(t *testing.T) {
	if got := UsableBound(100, 0); got != 99 {
		t.Fatalf("UsableBound(100, 0) = %d, want 99", got)
	}
	if got := UsableBound(5, 2); got != 2 {
		t.Fatalf("UsableBound(5, 2) = %d, want 2", got)
	}
	if got := UsableBound(1, 5); got >= 0 {
		t.Fatalf("UsableBound(1, 5) = %d, want negative", got)
	}
}

func TestPartition_ShortVideo(t *testing.T) {
	// framecount 5, buffer 2, start 0, two splits: usable range is 3 frames
	spans := Partition(5, 0, 2, 2)
	want := []Span{{Begin: 0, End: 0}, {Begin: 1, End: 2}}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d: %v", len(spans), len(want), spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Fatalf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestPartition_Properties(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		start  int
		buffer int
		n      int
	}{
		{name: "even", count: 100, start: 0, buffer: 0, n: 4},
		{name: "remainder to final", count: 103, start: 0, buffer: 0, n: 4},
		{name: "offset and buffer", count: 1000, start: 10, buffer: 25, n: 3},
		{name: "shorter than n", count: 10, start: 0, buffer: 7, n: 5},
		{name: "single split", count: 50, start: 0, buffer: 0, n: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spans := Partition(tc.count, tc.start, tc.buffer, tc.n)
			usable := tc.count - tc.buffer - tc.start

			if len(spans) > tc.n {
				t.Fatalf("got %d spans for n=%d", len(spans), tc.n)
			}
			covered := 0
			for i, sp := range spans {
				if sp.Len() <= 0 {
					t.Fatalf("span %d has non-positive length: %+v", i, sp)
				}
				if i == 0 && sp.Begin != tc.start {
					t.Fatalf("first span begins at %d, want %d", sp.Begin, tc.start)
				}
				if i > 0 && sp.Begin != spans[i-1].End+1 {
					t.Fatalf("span %d is not contiguous with previous: %v", i, spans)
				}
				covered += sp.Len()
			}
			if len(spans) > 0 && spans[len(spans)-1].End != tc.start+usable-1 {
				t.Fatalf("final span ends at %d, want %d", spans[len(spans)-1].End, tc.start+usable-1)
			}
			if len(spans) == tc.n && covered != usable {
				t.Fatalf("spans cover %d frames, usable is %d", covered, usable)
			}
		})
	}
}

func TestPartition_Empty(t *testing.T) {
	if spans := Partition(5, 5, 0, 2); spans != nil {
		t.Fatalf("expected nil for empty usable span, got %v", spans)
	}
	if spans := Partition(5, 0, 5, 2); spans != nil {
		t.Fatalf("expected nil when buffer swallows the video, got %v", spans)
	}
	if spans := Partition(10, 0, 0, 0); spans != nil {
		t.Fatalf("expected nil for n=0, got %v", spans)
	}
}

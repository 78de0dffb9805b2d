// Package dataset holds the flat-file table types shared by the jobs: the
// counts table, timestamped event logs, and the dataset table itself.
// All tables live in CSV files; this package is the only place that touches
// their on-disk shape
package dataset

// Header is the canonical dataset table header. Column order and presence are
// the contract with downstream tooling
var Header = []string{"filename", "class", "beginframe", "endframe"}

// Row is one labeled frame interval of the dataset table.
// Invariant: 0 <= BeginFrame <= EndFrame <= framecount-1 for the row's video
type Row struct {
	Filename   string
	Class      int
	BeginFrame int
	EndFrame   int
}

// RawRow is a dataset row as read from disk, before numeric parsing.
// The checker validates these cell-by-cell so a bad cell downgrades one row
// instead of failing the file
type RawRow struct {
	Filename   string `csv:"filename" validate:"required"`
	Class      string `csv:"class" validate:"required"`
	BeginFrame string `csv:"beginframe" validate:"required"`
	EndFrame   string `csv:"endframe" validate:"required"`
}

// VideoRecord is one row of the counts table
type VideoRecord struct {
	Filename   string
	FrameCount int
}

// Counts is the frame-count table: file order preserved, name lookup indexed
type Counts struct {
	records []VideoRecord
	index   map[string]int
}

// Len returns the number of videos in the table
func (c *Counts) Len() int { return len(c.records) }

// Records returns the videos in file order
func (c *Counts) Records() []VideoRecord { return c.records }

// First returns the first video of the table and false when the table is empty
func (c *Counts) First() (VideoRecord, bool) {
	if len(c.records) == 0 {
		return VideoRecord{}, false
	}
	return c.records[0], true
}

// FrameCount looks up a video's total frame count by name
func (c *Counts) FrameCount(name string) (int, bool) {
	i, ok := c.index[name]
	if !ok {
		return 0, false
	}
	return c.records[i].FrameCount, true
}

// add appends a record, keeping the name index in sync.
// A duplicate name keeps the first record (file order wins)
func (c *Counts) add(r VideoRecord) bool {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if _, dup := c.index[r.Filename]; dup {
		return false
	}
	c.index[r.Filename] = len(c.records)
	c.records = append(c.records, r)
	return true
}

// Event is one event-log line: an elapsed time attributed to a video.
// Line carries the 1-based line number for log context
type Event struct {
	Video   string
	Seconds float64
	Line    int
}

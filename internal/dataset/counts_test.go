package dataset

import (
	"context"
	"path/filepath"
	"testing"

	perr "frameset/internal/platform/errors"
	"frameset/internal/platform/testkit"
)

func TestReadCounts(t *testing.T) {
	dir := t.TempDir()
	p := testkit.WriteFile(t, dir, "counts.csv",
		"filename,framecount\nv1,100\nv2,250\n")

	c, err := ReadCounts(context.Background(), p)
	if err != nil {
		t.Fatalf("ReadCounts: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if n, ok := c.FrameCount("v2"); !ok || n != 250 {
		t.Fatalf("FrameCount(v2) = %d, %v", n, ok)
	}
	if _, ok := c.FrameCount("v9"); ok {
		t.Fatal("FrameCount(v9) should miss")
	}
	first, ok := c.First()
	if !ok || first.Filename != "v1" {
		t.Fatalf("First = %+v, %v", first, ok)
	}
}

func TestReadCounts_DropsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	p := testkit.WriteFile(t, dir, "counts.csv",
		"filename,framecount\nv1,100\nv2,notanumber\n,50\nv3,-4\nv1,999\nv4,80\n")

	c, err := ReadCounts(context.Background(), p)
	if err != nil {
		t.Fatalf("ReadCounts: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (v1, v4)", c.Len())
	}
	// duplicate keeps the first row
	if n, _ := c.FrameCount("v1"); n != 100 {
		t.Fatalf("FrameCount(v1) = %d, want 100", n)
	}
}

func TestReadCounts_Unreadable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.csv")},
		{name: "wrong header", path: testkit.WriteFile(t, dir, "bad.csv", "a,b\nv1,100\n")},
		{name: "no rows", path: testkit.WriteFile(t, dir, "empty.csv", "filename,framecount\n")},
		{name: "all rows malformed", path: testkit.WriteFile(t, dir, "junk.csv", "filename,framecount\nv1,x\n")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCounts(context.Background(), tc.path)
			if err == nil {
				t.Fatal("want error")
			}
			if !perr.IsCode(err, perr.ErrorCodeUnreadable) {
				t.Fatalf("code = %v, want unreadable", perr.CodeOf(err))
			}
		})
	}
}

package service

import (
	"context"
	"strings"
	"testing"

	"frameset/internal/dataset"
	perr "frameset/internal/platform/errors"
	"frameset/internal/platform/testkit"
	"frameset/internal/services/check/domain"
)

const countsBody = "filename,framecount\nv1,100\nv2,50\n"

func opts(dir string) domain.Options {
	return domain.Options{
		InPath:     dir,
		CountsFile: "counts.csv",
		Pattern:    "dataset*.csv",
	}
}

func loadCounts(t *testing.T, dir string) *dataset.Counts {
	t.Helper()
	path := testkit.WriteFile(t, dir, "counts.csv", countsBody)
	counts, err := dataset.ReadCounts(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadCounts: %v", err)
	}
	return counts
}

func TestCheckFile_DropsBadOrdering(t *testing.T) {
	dir := t.TempDir()
	counts := loadCounts(t, dir)
	path := testkit.WriteFile(t, dir, "dataset.csv",
		"filename,class,beginframe,endframe\nv1,0,10,30\nv1,0,50,40\nv2,1,0,49\n")

	svc := NewChecker()
	if err := svc.CheckFile(context.Background(), path, counts); err != nil {
		t.Fatalf("CheckFile: %v", err)
	}

	cleaned := testkit.ReadFile(t, path)
	if strings.Contains(cleaned, "50,40") {
		t.Fatalf("misordered row survived:\n%s", cleaned)
	}
	testkit.MustContain(t, cleaned, "v1,0,10,30")
	testkit.MustContain(t, cleaned, "v2,1,0,49")

	// the original, fault and all, lives on in the backup
	bak := testkit.ReadFile(t, path+".bak")
	testkit.MustContain(t, bak, "v1,0,50,40")
}

func TestCheckFile_CleanFileUntouched(t *testing.T) {
	dir := t.TempDir()
	counts := loadCounts(t, dir)
	body := "filename,class,beginframe,endframe\nv1,0,10,30\nv2,1,0,49\n"
	path := testkit.WriteFile(t, dir, "dataset.csv", body)

	svc := NewChecker()
	if err := svc.CheckFile(context.Background(), path, counts); err != nil {
		t.Fatalf("CheckFile: %v", err)
	}

	if got := testkit.ReadFile(t, path); got != body {
		t.Fatalf("clean file rewritten:\n%s", got)
	}
	if testkit.FileExists(t, path+".bak") {
		t.Fatal("backup made for a clean file")
	}
}

func TestCheckFile_SecondPassIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	counts := loadCounts(t, dir)
	path := testkit.WriteFile(t, dir, "dataset.csv",
		"filename,class,beginframe,endframe\nv1,0,10,30\nv1,0,-5,30\n")

	svc := NewChecker()
	if err := svc.CheckFile(context.Background(), path, counts); err != nil {
		t.Fatalf("first CheckFile: %v", err)
	}
	cleaned := testkit.ReadFile(t, path)
	bak := testkit.ReadFile(t, path+".bak")

	if err := svc.CheckFile(context.Background(), path, counts); err != nil {
		t.Fatalf("second CheckFile: %v", err)
	}
	if got := testkit.ReadFile(t, path); got != cleaned {
		t.Fatalf("second pass changed a clean file:\n%s", got)
	}
	if got := testkit.ReadFile(t, path+".bak"); got != bak {
		t.Fatal("second pass overwrote the backup")
	}
}

func TestCheckFile_FindingTable(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{name: "blank class", row: "v1,,10,20"},
		{name: "blank end frame", row: "v1,0,5,"},
		{name: "non-numeric begin", row: "v1,0,ten,20"},
		{name: "negative frame", row: "v1,0,-1,20"},
		{name: "begin past end", row: "v1,0,30,20"},
		{name: "past last frame", row: "v2,1,10,50"},
		{name: "unknown video", row: "ghost,0,10,20"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			counts := loadCounts(t, dir)
			path := testkit.WriteFile(t, dir, "dataset.csv",
				"filename,class,beginframe,endframe\nv1,0,10,30\n"+tc.row+"\n")

			svc := NewChecker()
			if err := svc.CheckFile(context.Background(), path, counts); err != nil {
				t.Fatalf("CheckFile: %v", err)
			}

			cleaned := testkit.ReadFile(t, path)
			if strings.Contains(cleaned, tc.row) {
				t.Fatalf("faulty row %q survived:\n%s", tc.row, cleaned)
			}
			testkit.MustContain(t, cleaned, "v1,0,10,30")
			testkit.MustContain(t, testkit.ReadFile(t, path+".bak"), tc.row)
		})
	}
}

func TestCheckFile_BoundaryFramesAreValid(t *testing.T) {
	dir := t.TempDir()
	counts := loadCounts(t, dir)
	// last frame of a 50-frame video is 49, and begin == end is legal
	body := "filename,class,beginframe,endframe\nv2,1,49,49\nv2,1,0,0\n"
	path := testkit.WriteFile(t, dir, "dataset.csv", body)

	svc := NewChecker()
	if err := svc.CheckFile(context.Background(), path, counts); err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if got := testkit.ReadFile(t, path); got != body {
		t.Fatalf("boundary rows dropped:\n%s", got)
	}
}

func TestCheckFile_AllRowsFaulty(t *testing.T) {
	dir := t.TempDir()
	counts := loadCounts(t, dir)
	path := testkit.WriteFile(t, dir, "dataset.csv",
		"filename,class,beginframe,endframe\nghost,0,10,20\nv1,0,40,20\n")

	svc := NewChecker()
	if err := svc.CheckFile(context.Background(), path, counts); err != nil {
		t.Fatalf("CheckFile: %v", err)
	}

	got := testkit.ReadFile(t, path)
	if rows := dataRows(got); len(rows) != 0 {
		t.Fatalf("want header-only file, got rows %v", rows)
	}
	testkit.MustContain(t, got, "filename,class,beginframe,endframe")
	if !testkit.FileExists(t, path+".bak") {
		t.Fatal("no backup for an all-faulty file")
	}
}

func TestRun_BatchSkipsUnparseableFile(t *testing.T) {
	dir := t.TempDir()
	testkit.WriteFile(t, dir, "counts.csv", countsBody)
	good := testkit.WriteFile(t, dir, "dataset_0.csv",
		"filename,class,beginframe,endframe\nv1,0,10,30\nv1,0,50,40\n")
	testkit.WriteFile(t, dir, "dataset_1.csv", "file,label\nv1,0\n")

	svc, err := New(opts(dir))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// the good file was cleaned even though its sibling could not be read
	cleaned := testkit.ReadFile(t, good)
	if strings.Contains(cleaned, "50,40") {
		t.Fatalf("faulty row survived batch run:\n%s", cleaned)
	}
	if testkit.FileExists(t, dir+"/dataset_1.csv.bak") {
		t.Fatal("unparseable file was backed up")
	}
}

func TestRun_NoMatchesIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	testkit.WriteFile(t, dir, "counts.csv", countsBody)

	svc, err := New(opts(dir))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_UnreadableCountsIsFatal(t *testing.T) {
	svc, err := New(opts(t.TempDir()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := svc.Run(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnreadable) {
		t.Fatalf("code = %v, want unreadable", perr.CodeOf(err))
	}
}

func TestNew_RejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Options)
	}{
		{name: "no in path", mutate: func(o *domain.Options) { o.InPath = "" }},
		{name: "no counts file", mutate: func(o *domain.Options) { o.CountsFile = "" }},
		{name: "no pattern", mutate: func(o *domain.Options) { o.Pattern = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := opts(t.TempDir())
			tc.mutate(&o)
			if _, err := New(o); !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("code = %v, want validation", perr.CodeOf(err))
			}
		})
	}
}

// dataRows returns the non-header, non-empty CSV lines of s
func dataRows(s string) []string {
	var out []string
	for i, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if i == 0 || line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

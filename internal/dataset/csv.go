package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	perr "frameset/internal/platform/errors"
)

// TableFile is a dataset table as it sits on disk: the header plus the raw
// records, cell text untouched
type TableFile struct {
	Header  []string
	Records [][]string
}

// Raw converts record i into a RawRow by column position. Short records leave
// the missing cells blank
func (t *TableFile) Raw(i int) RawRow {
	var rr RawRow
	rec := t.Records[i]
	if len(rec) > 0 {
		rr.Filename = strings.TrimSpace(rec[0])
	}
	if len(rec) > 1 {
		rr.Class = strings.TrimSpace(rec[1])
	}
	if len(rec) > 2 {
		rr.BeginFrame = strings.TrimSpace(rec[2])
	}
	if len(rec) > 3 {
		rr.EndFrame = strings.TrimSpace(rec[3])
	}
	return rr
}

// ReadTable loads a dataset table and verifies its header. A file whose
// header does not match is not a dataset table and is rejected whole; row
// anomalies are left for the caller to judge
func ReadTable(ctx context.Context, path string) (*TableFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnreadable, "open dataset table %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnreadable, "read dataset header %s", path)
	}
	if len(head) < len(Header) {
		return nil, perr.Unreadablef("dataset table %s: want header %v, got %v", path, Header, head)
	}
	for i, col := range Header {
		if !strings.EqualFold(strings.TrimSpace(head[i]), col) {
			return nil, perr.Unreadablef("dataset table %s: want header %v, got %v", path, Header, head)
		}
	}

	out := &TableFile{Header: head}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnreadable, "read dataset table %s", path)
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// WriteTable writes rows as a dataset CSV at path via a temp file and rename,
// so a crash never leaves a half-written table at the destination
func WriteTable(ctx context.Context, path string, rows []Row) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{
			row.Filename,
			strconv.Itoa(row.Class),
			strconv.Itoa(row.BeginFrame),
			strconv.Itoa(row.EndFrame),
		}
	}
	return WriteRecords(ctx, path, Header, records)
}

// WriteRecords writes an arbitrary header+records table with the same
// temp-file-plus-rename discipline as WriteTable
func WriteRecords(ctx context.Context, path string, header []string, records [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "create temp table in %s", dir)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name()) // no-op after a successful rename
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write header %s", path)
	}
	if err := w.WriteAll(records); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write rows %s", path)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "flush table %s", path)
	}
	if err := tmp.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "close temp table %s", tmp.Name())
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "chmod temp table %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "rename temp table to %s", path)
	}
	return nil
}

// Backup copies path to path.bak, overwriting any older backup.
// Called right before a cleaned table overwrites its original
func Backup(ctx context.Context, path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeIO, "open %s for backup", path)
	}
	defer src.Close()

	bak := path + ".bak"
	dst, err := os.OpenFile(bak, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeIO, "create backup %s", bak)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeIO, "copy %s to %s", path, bak)
	}
	if err := dst.Close(); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeIO, "close backup %s", bak)
	}
	return bak, nil
}

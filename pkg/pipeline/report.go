package pipeline

import (
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Report summarises a run
type Report struct {
	Lines        int
	Blank        int
	Truncated    int
	Malformed    int
	Rejected     int
	Sensors      int
	Entries      int
	FilesWritten int
	FilesFailed  int
	BytesWritten int64
}

// Fields returns the report as log fields with human-readable numbers
func (r *Report) Fields() []zap.Field {
	return []zap.Field{
		zap.String("lines", humanize.Comma(int64(r.Lines))),
		zap.String("entries", humanize.Comma(int64(r.Entries))),
		zap.Int("sensors", r.Sensors),
		zap.Int("truncated", r.Truncated),
		zap.Int("malformed", r.Malformed),
		zap.Int("rejected", r.Rejected),
		zap.Int("files", r.FilesWritten),
		zap.Int("failed", r.FilesFailed),
		zap.String("written", humanize.Bytes(uint64(r.BytesWritten))),
	}
}

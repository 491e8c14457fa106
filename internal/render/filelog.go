package render

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/chabad360/oscwatch/internal/pump"
)

// FileLog appends every record and notice to a JSON log file. It implements
// both pump.MonitorSink and pump.SendSink.
type FileLog struct {
	log  zerolog.Logger
	file *os.File
}

// OpenFileLog opens (or creates) path for appending.
func OpenFileLog(path string) (*FileLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &FileLog{
		log:  zerolog.New(f).With().Timestamp().Logger(),
		file: f,
	}, nil
}

func (l *FileLog) Record(r pump.Record) {
	args := make([]string, 0, len(r.Message.Arguments))
	for _, a := range r.Message.Arguments {
		args = append(args, FormatArgument(a))
	}
	l.log.Info().
		Str("from", r.Sender.String()).
		Int("bytes", r.Size).
		Str("address", r.Message.Address).
		Str("tags", r.Message.TypeTags()).
		Strs("args", args).
		Msg("recv")
}

func (l *FileLog) Malformed(n pump.MalformedNotice) {
	l.log.Warn().
		Str("from", n.Sender.String()).
		Int("bytes", n.Size).
		Err(n.Err).
		Msg("malformed")
}

func (l *FileLog) Result(res pump.SendResult) {
	if res.Err != nil {
		l.log.Warn().Str("line", res.Line).Err(res.Err).Msg("send failed")
		return
	}
	l.log.Info().
		Str("address", res.Address).
		Str("arg", FormatArgument(res.Arg)).
		Msg("sent")
}

func (l *FileLog) Close() error {
	return l.file.Close()
}

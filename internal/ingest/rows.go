package ingest

import (
	"context"

	"datagrid/internal/grid"
	"datagrid/internal/parse"
	"datagrid/internal/util/logx"
)

const detectSample = 50

// Drain consumes lines until the source is exhausted and decodes them into
// rows. An empty format is detected from the first lines. The decoder is
// returned so follow mode can keep decoding with the same state (CSV header,
// id sequence).
func Drain(ctx context.Context, lines <-chan Line, errs <-chan error, format parse.Format) ([]grid.Row, parse.Decoder, error) {
	var buffered []string
	for lines != nil || errs != nil {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case l, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			buffered = append(buffered, l.Text)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return nil, nil, err
			}
		}
	}
	if format == "" {
		sample := buffered
		if len(sample) > detectSample {
			sample = sample[:detectSample]
		}
		g := parse.Detect(sample)
		format = g.Format
		logx.Infof("ingest: detected format=%s conf=%.2f", g.Format, g.Confidence)
	}
	dec, err := parse.NewDecoder(format)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]grid.Row, 0, len(buffered))
	skipped := 0
	for _, text := range buffered {
		r, ok := dec.Decode(text)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, r)
	}
	logx.Infof("ingest: decoded %d rows (%d lines skipped)", len(rows), skipped)
	return rows, dec, nil
}

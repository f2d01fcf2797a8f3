package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"schemagen/internal/output"
	"schemagen/internal/regions"
)

// WriteSummary lists the written files by outcome.
type WriteSummary struct {
	Created   []string
	Updated   []string
	Unchanged []string
}

// WriteFiles stores all generated files through sink. Files whose content
// is unchanged are left alone.
func WriteFiles(ctx context.Context, sink output.Sink, files []GeneratedFile) (WriteSummary, error) {
	var sum WriteSummary

	for _, file := range files {
		status, err := sink.WriteFile(ctx, file.Filename, file.Content)
		if err != nil {
			return sum, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		switch status {
		case output.Created:
			sum.Created = append(sum.Created, file.Filename)
		case output.Updated:
			sum.Updated = append(sum.Updated, file.Filename)
		default:
			sum.Unchanged = append(sum.Unchanged, file.Filename)
		}
	}

	return sum, nil
}

// SinkPrior reads custom code regions from the files already stored in
// sink. Files that do not exist yet yield no regions.
func SinkPrior(ctx context.Context, sink output.Sink) PriorFunc {
	return func(filename string) (*regions.Set, error) {
		content, err := sink.ReadFile(ctx, filename)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		if err != nil {
			return nil, err
		}

		return regions.Extract(bytes.NewReader(content))
	}
}

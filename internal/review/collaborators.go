package review

import (
	"context"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// Scanner lists the subdirectories and audio files of a directory.
type Scanner interface {
	Scan(ctx context.Context, path string) (metadata.Listing, error)
}

// Searcher looks up ranked candidates for a set of files.
type Searcher interface {
	Search(ctx context.Context, files []metadata.MetadataItem) ([]metadata.ProviderResult, error)
	SearchManual(ctx context.Context, input string, files []metadata.MetadataItem) ([]metadata.ProviderResult, error)
}

// Applier writes a candidate's metadata to the files it was matched against.
type Applier interface {
	Apply(ctx context.Context, r metadata.ProviderResult, files []metadata.MetadataItem) error
}

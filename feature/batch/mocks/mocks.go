package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"datforge/core/catalog"
	"datforge/feature/batch"
)

// HashProvider is a mock implementation of batch.HashProvider
type HashProvider struct {
	mock.Mock
}

func (m *HashProvider) Digests(ctx context.Context, path string) (batch.Digests, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(batch.Digests), args.Error(1)
}

// FileEnumerator is a mock implementation of batch.FileEnumerator
type FileEnumerator struct {
	mock.Mock
}

func (m *FileEnumerator) Enumerate(ctx context.Context, root string) ([]string, error) {
	args := m.Called(ctx, root)
	if paths, ok := args.Get(0).([]string); ok {
		return paths, args.Error(1)
	}
	return nil, args.Error(1)
}

// Sink is a mock implementation of batch.Sink
type Sink struct {
	mock.Mock
}

func (m *Sink) Flush(ctx context.Context, c *catalog.Catalog) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

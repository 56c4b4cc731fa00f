package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"datforge/core/catalog"
	"datforge/core/hashes"
	"datforge/core/item"
	"datforge/feature/batch"
	"datforge/feature/batch/mocks"
	"datforge/feature/dialect"

	_ "datforge/feature/dialect/cmpro"
	_ "datforge/feature/dialect/logiqx"
)

const logiqxDat = `<?xml version="1.0"?>
<datafile>
	<header><name>set one</name></header>
	<machine name="pacman">
		<rom name="pm1.bin" size="4096" crc="deadbeef"/>
	</machine>
</datafile>`

const cmproDat = `clrmamepro (
	name "set two"
)
game (
	name galaga
	rom ( name gg1.bin size 2048 crc cafebabe )
)`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newService() *batch.Service {
	return batch.NewService(batch.Config{
		Catalog: catalog.Options{Mode: catalog.BucketGameName, Norename: true},
	}, zap.NewNop())
}

func TestRunMergesInputs(t *testing.T) {
	a := writeTemp(t, "one.dat", logiqxDat)
	b := writeTemp(t, "two.dat", cmproDat)

	report, err := newService().Run(context.Background(), []string{a, b}, nil)
	require.NoError(t, err)
	require.NoError(t, report.Err())
	require.Len(t, report.Results, 2)

	assert.Equal(t, dialect.Logiqx, report.Results[0].Format)
	assert.Equal(t, dialect.ClrMamePro, report.Results[1].Format)
	assert.Equal(t, 1, report.Results[0].Items)
	assert.Equal(t, 1, report.Results[1].Items)

	assert.Equal(t, 2, report.Merged.Len())
	assert.Equal(t, "set one", report.Merged.Header.Name, "first input wins header fields")
	assert.NotEmpty(t, report.RunID)
}

func TestRunBadFileDoesNotAbortSiblings(t *testing.T) {
	good := writeTemp(t, "good.dat", logiqxDat)
	missing := filepath.Join(t.TempDir(), "missing.dat")

	report, err := newService().Run(context.Background(), []string{missing, good}, nil)
	require.NoError(t, err, "per-file failures do not fail the run")

	require.Error(t, report.Results[0].Err)
	require.NoError(t, report.Results[1].Err)
	assert.Error(t, report.Err())
	assert.Equal(t, 1, report.Merged.Len(), "good sibling still parsed")
}

func TestRunFlushesSink(t *testing.T) {
	a := writeTemp(t, "one.dat", logiqxDat)

	sink := new(mocks.Sink)
	sink.On("Flush", mock.Anything, mock.Anything).Return(nil)

	report, err := newService().Run(context.Background(), []string{a}, sink)
	require.NoError(t, err)
	sink.AssertCalled(t, "Flush", mock.Anything, report.Merged)
}

func TestRunSinkFailure(t *testing.T) {
	a := writeTemp(t, "one.dat", logiqxDat)

	sink := new(mocks.Sink)
	sink.On("Flush", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	report, err := newService().Run(context.Background(), []string{a}, sink)
	require.Error(t, err)
	require.NotNil(t, report, "parse results survive a failed flush")
	assert.Equal(t, 1, report.Merged.Len())
}

func TestScan(t *testing.T) {
	enum := new(mocks.FileEnumerator)
	enum.On("Enumerate", mock.Anything, "/roms").
		Return([]string{"pacman/pm1.bin", "loose.bin"}, nil)

	hp := new(mocks.HashProvider)
	hp.On("Digests", mock.Anything, filepath.Join("/roms", "pacman/pm1.bin")).
		Return(batch.Digests{Size: 4096, Hashes: map[hashes.Kind]string{hashes.CRC32: "deadbeef"}}, nil)
	hp.On("Digests", mock.Anything, filepath.Join("/roms", "loose.bin")).
		Return(batch.Digests{}, errors.New("unreadable"))

	c, err := newService().Scan(context.Background(), "/roms", enum, hp)
	require.Error(t, err, "unreadable file surfaces in the aggregate")
	require.NotNil(t, c)
	require.Equal(t, 1, c.Len())

	rom := c.Bucket(c.Keys()[0])[0].(*item.Rom)
	assert.Equal(t, "pm1.bin", rom.Name())
	assert.Equal(t, int64(4096), rom.Size)
	assert.Equal(t, "deadbeef", rom.CRC)
	assert.Equal(t, "pacman", rom.Machine().Name)
}

func TestScanEnumerateFailure(t *testing.T) {
	enum := new(mocks.FileEnumerator)
	enum.On("Enumerate", mock.Anything, "/nope").Return(nil, errors.New("no such root"))

	c, err := newService().Scan(context.Background(), "/nope", enum, new(mocks.HashProvider))
	assert.Nil(t, c)
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/containerd/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ar "github.com/please-build/ardump"
	"github.com/please-build/ardump/internal/artest"
)

func writeArchive(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lib.a")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func libArchive() *artest.Archive {
	return artest.NewBuilder(false).
		AddSymbolIndex(ar.SYMDEF_SORTED, true,
			artest.Symbol{Name: "_foo", Member: "foo.o"},
			artest.Symbol{Name: "_bar", Member: "bar.o"},
		).
		Add("foo.o", []byte("foo")).
		Add("bar.o", []byte("bar")).
		Build()
}

func TestRun(t *testing.T) {
	path := writeArchive(t, libArchive().Data)

	var stdout, stderr bytes.Buffer
	status := run(context.Background(), []string{path}, &stdout, &stderr)
	assert.Equal(t, 0, status)
	assert.Equal(t, "_foo foo.o\n_bar bar.o\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunVerbose(t *testing.T) {
	a := libArchive()
	path := writeArchive(t, a.Data)

	var stdout, stderr bytes.Buffer
	status := run(context.Background(), []string{"-v", path}, &stdout, &stderr)
	assert.Equal(t, 0, status)
	assert.Contains(t, stdout.String(), "ar_name: __.SYMDEF SORTED (extended BSD name)\n")
	assert.Contains(t, stdout.String(), "2 ranlibs\n")
	assert.Contains(t, stdout.String(), "ran_strx 0x5: _bar, ran_off 0x")
	assert.Contains(t, stdout.String(), "ar_name: bar.o\n")
}

func TestRunErrors(t *testing.T) {
	fat := binary.BigEndian.AppendUint32(nil, ar.FAT_MAGIC)
	fat = append(fat, make([]byte, 60)...)

	for _, tc := range []struct {
		Description string
		Args        []string
		Message     string
	}{
		{"no arguments", []string{}, "expected args == 1, got 0"},
		{"too many arguments", []string{"a.a", "b.a"}, "expected args == 1, got 2"},
		{"missing file", []string{filepath.Join(t.TempDir(), "missing.a")}, "unable to read"},
		{"fat binary", []string{writeArchive(t, fat)}, "fat/universal binaries are not archives"},
		{"not an archive", []string{writeArchive(t, []byte("hello, world\n"))}, "file does not start with"},
		{"unknown log format", []string{"--log-format", "xml", writeArchive(t, libArchive().Data)}, "unknown log format"},
	} {
		t.Run(tc.Description, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			status := run(context.Background(), tc.Args, &stdout, &stderr)
			assert.Equal(t, 1, status)
			assert.Contains(t, stderr.String(), tc.Message)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRunDebugLogging(t *testing.T) {
	level := log.GetLevel()
	t.Cleanup(func() {
		log.L.Logger.SetLevel(level)
		_ = log.SetFormat(log.TextFormat)
	})

	path := writeArchive(t, libArchive().Data)

	var stdout, stderr bytes.Buffer
	status := run(context.Background(), []string{"--debug", "--log-format", "json", path}, &stdout, &stderr)
	assert.Equal(t, 0, status)
	assert.Equal(t, "_foo foo.o\n_bar bar.o\n", stdout.String())
	assert.Contains(t, stderr.String(), `"msg":"scanning archive"`)
	assert.Contains(t, stderr.String(), `"archive":"`+path+`"`)
}

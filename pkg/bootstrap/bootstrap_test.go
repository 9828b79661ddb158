package bootstrap

import (
	"errors"
	"regexp"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlcup/dvcboot/pkg/dvccfg"
)

var keyPattern = regexp.MustCompile(`^s3://ml-cup-dvc/[A-Za-z0-9]{32}$`)

func toolPresent(string) (string, error) { return "/usr/bin/dvc", nil }

func toolAbsent(name string) (string, error) { return "", errors.New(name + ": not found") }

func newTestBootstrapper(fs afero.Fs, opts ...Option) *Bootstrapper {
	return New(append([]Option{Fs(fs), LookPath(toolPresent)}, opts...)...)
}

func TestEnsureFreshCheckout(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := newTestBootstrapper(fs)

	res, err := b.Ensure()
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Regexp(t, keyPattern, res.URL)

	lines, err := dvccfg.Load(fs, ".dvc/config")
	require.NoError(t, err)
	url, ok := dvccfg.FindURL(lines, DefaultBucketBase)
	require.True(t, ok)
	assert.Equal(t, res.URL, url)
	// fresh config declares the remote as the checkout default
	assert.Contains(t, lines, "[core]")
	assert.Contains(t, lines, "    remote = storage")
}

func TestEnsureIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := newTestBootstrapper(fs)

	first, err := b.Ensure()
	require.NoError(t, err)
	require.True(t, first.Created)
	afterFirst, err := afero.ReadFile(fs, ".dvc/config")
	require.NoError(t, err)

	second, err := b.Ensure()
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.URL, second.URL)

	afterSecond, err := afero.ReadFile(fs, ".dvc/config")
	require.NoError(t, err)
	assert.Equal(t, afterFirst, afterSecond)
}

func TestEnsurePreservesConfiguredFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "[core]\n" +
		"    remote = storage\n" +
		"['remote \"storage\"']\n" +
		"    url = s3://ml-cup-dvc/abc123abc123abc123abc123abc12345\n" +
		"[cache]\n" +
		"    type = hardlink\n"
	require.NoError(t, afero.WriteFile(fs, ".dvc/config", []byte(content), 0644))

	b := newTestBootstrapper(fs)
	res, err := b.Ensure()
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "s3://ml-cup-dvc/abc123abc123abc123abc123abc12345", res.URL)

	after, err := afero.ReadFile(fs, ".dvc/config")
	require.NoError(t, err)
	assert.Equal(t, content, string(after))
}

func TestEnsureMissingToolWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := New(Fs(fs), LookPath(toolAbsent))

	_, err := b.Ensure()
	require.Error(t, err)
	assert.Equal(t, ErrToolMissing, err)

	exists, err := afero.DirExists(fs, ".dvc")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEnsureKeepsForeignLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "[cache]\n" +
		"    type = hardlink\n" +
		"['remote \"scratch\"']\n" +
		"    url = s3://scratch-bucket/other\n"
	require.NoError(t, afero.WriteFile(fs, ".dvc/config", []byte(content), 0644))

	b := newTestBootstrapper(fs, KeyGen(func(n int) string {
		return "k2k2k2k2k2k2k2k2k2k2k2k2k2k2k2k2"[:n]
	}))
	res, err := b.Ensure()
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "s3://ml-cup-dvc/k2k2k2k2k2k2k2k2k2k2k2k2k2k2k2k2", res.URL)

	after, err := afero.ReadFile(fs, ".dvc/config")
	require.NoError(t, err)
	expected := content +
		"['remote \"storage\"']\n" +
		"    url = s3://ml-cup-dvc/k2k2k2k2k2k2k2k2k2k2k2k2k2k2k2k2\n"
	assert.Equal(t, expected, string(after))
}

func TestEnsureMalformedConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".dvc/config", []byte("!! not a config !!\n"), 0644))

	b := newTestBootstrapper(fs)
	res, err := b.Ensure()
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Regexp(t, keyPattern, res.URL)

	lines, err := dvccfg.Load(fs, ".dvc/config")
	require.NoError(t, err)
	assert.Equal(t, "!! not a config !!", lines[0])
}

func TestEnsureWriteFailurePropagates(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll(".dvc", 0755))
	b := New(Fs(afero.NewReadOnlyFs(base)), LookPath(toolPresent))

	_, err := b.Ensure()
	require.Error(t, err)
}

func TestDecideIsPure(t *testing.T) {
	b := New(KeyGen(func(n int) string {
		return "ZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ"[:n]
	}))

	res, out := b.decide(nil)
	assert.True(t, res.Created)
	assert.Equal(t, "s3://ml-cup-dvc/ZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ", res.URL)
	require.NotEmpty(t, out)

	// feeding the produced lines back finds the same URL and writes nothing
	res2, out2 := b.decide(out)
	assert.False(t, res2.Created)
	assert.Equal(t, res.URL, res2.URL)
	assert.Nil(t, out2)
}

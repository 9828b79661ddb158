// Package bootstrap implements the idempotent DVC remote bootstrap: it
// guarantees that a checkout's .dvc/config names an S3 remote under the
// shared contest bucket, generating a fresh random namespace key only when
// none is configured yet.
package bootstrap

import (
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mlcup/dvcboot/internal/rand"
	"github.com/mlcup/dvcboot/pkg/dvccfg"
)

const (
	// DefaultRemoteName is the remote dvc add/push operations refer to.
	DefaultRemoteName = "storage"

	// DefaultBucketBase is the shared contest bucket; the random key
	// namespaces this checkout inside it.
	DefaultBucketBase = "s3://ml-cup-dvc/"

	// DefaultConfigDir is where dvc keeps its configuration, relative to
	// the working directory.
	DefaultConfigDir = ".dvc"

	// DefaultTool is the external executable required on PATH.
	DefaultTool = "dvc"

	// KeyLength is the length of generated namespace keys.
	KeyLength = 32

	configFile = "config"
)

type errString string

func (e errString) Error() string { return string(e) }

// ErrToolMissing reports that the external dvc executable is not on PATH.
const ErrToolMissing errString = "dvc executable not found in PATH"

// Result describes what Ensure did.
type Result struct {
	// URL is the remote storage URL now present in the configuration.
	URL string

	// Created is true when a fresh key was generated during this run,
	// false when an already-configured URL was found and preserved.
	Created bool
}

// Option alters the behavior of a Bootstrapper.
type Option func(*Bootstrapper)

// Fs sets the filesystem the bootstrapper operates on.
func Fs(fs afero.Fs) Option {
	return func(b *Bootstrapper) {
		b.fs = fs
	}
}

// Logger sets the zap logger.
func Logger(l *zap.Logger) Option {
	return func(b *Bootstrapper) {
		b.l = l
	}
}

// RemoteName overrides the remote name constant.
func RemoteName(name string) Option {
	return func(b *Bootstrapper) {
		b.remoteName = name
	}
}

// BucketBase overrides the bucket base URL constant.
func BucketBase(base string) Option {
	return func(b *Bootstrapper) {
		b.bucketBase = base
	}
}

// ConfigDir overrides the configuration directory path.
func ConfigDir(dir string) Option {
	return func(b *Bootstrapper) {
		b.configDir = dir
	}
}

// Tool overrides the name of the required external executable.
func Tool(name string) Option {
	return func(b *Bootstrapper) {
		b.tool = name
	}
}

// LookPath overrides how the external tool is located, for tests.
func LookPath(fn func(string) (string, error)) Option {
	return func(b *Bootstrapper) {
		b.lookPath = fn
	}
}

// KeyGen overrides the random key generator, for tests.
func KeyGen(fn func(int) string) Option {
	return func(b *Bootstrapper) {
		b.keyGen = fn
	}
}

// Bootstrapper ensures the remote configuration for one checkout.
type Bootstrapper struct {
	fs         afero.Fs
	l          *zap.Logger
	remoteName string
	bucketBase string
	configDir  string
	tool       string
	lookPath   func(string) (string, error)
	keyGen     func(int) string
}

// New creates a Bootstrapper with the contest defaults.
func New(opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		fs:         afero.NewOsFs(),
		l:          zap.NewNop(),
		remoteName: DefaultRemoteName,
		bucketBase: DefaultBucketBase,
		configDir:  DefaultConfigDir,
		tool:       DefaultTool,
		lookPath:   exec.LookPath,
		keyGen:     rand.KeyString,
	}
	for _, apply := range opts {
		apply(b)
	}
	return b
}

// ConfigPath returns the path of the dvc config file this bootstrapper
// manages.
func (b *Bootstrapper) ConfigPath() string {
	return filepath.Join(b.configDir, configFile)
}

// Ensure runs the bootstrap. It verifies the dvc tool is available, then
// makes sure the config file holds a remote URL under the bucket base,
// writing one with a fresh random key only when none is found. Running it
// again after a successful run changes nothing.
func (b *Bootstrapper) Ensure() (Result, error) {
	if _, err := b.lookPath(b.tool); err != nil {
		return Result{}, ErrToolMissing
	}
	if err := b.fs.MkdirAll(b.configDir, 0755); err != nil {
		return Result{}, errors.Wrapf(err, "create config dir %q", b.configDir)
	}
	path := b.ConfigPath()
	lines, err := dvccfg.Load(b.fs, path)
	if err != nil {
		// an unreadable config reads as unconfigured: from here, absence
		// and malformedness are observably the same
		b.l.Warn("could not read existing config, treating as unconfigured",
			zap.String("path", path), zap.Error(err))
		lines = nil
	}
	res, out := b.decide(lines)
	if !res.Created {
		b.l.Debug("remote already configured",
			zap.String("remote", b.remoteName), zap.String("url", res.URL))
		return res, nil
	}
	if err := dvccfg.Save(b.fs, path, out); err != nil {
		return Result{}, err
	}
	b.l.Info("configured remote",
		zap.String("remote", b.remoteName), zap.String("url", res.URL))
	return res, nil
}

// decide is the pure core of the bootstrapper: given the current config
// lines it either reports the existing URL, or generates a keyed URL and
// returns the lines to persist. It performs no I/O.
func (b *Bootstrapper) decide(lines []string) (Result, []string) {
	if url, ok := dvccfg.FindURL(lines, b.bucketBase); ok {
		return Result{URL: url}, nil
	}
	url := b.bucketBase + b.keyGen(KeyLength)
	if len(lines) == 0 {
		return Result{URL: url, Created: true}, dvccfg.Fresh(b.remoteName, url)
	}
	return Result{URL: url, Created: true}, dvccfg.SetRemoteURL(lines, b.remoteName, url)
}

package cmd

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configuredURLPattern = regexp.MustCompile(`url = s3://ml-cup-dvc/[A-Za-z0-9]{32}`)

type exitMocks struct {
	fatalCalls int
	exitCodes  []int
	stdout     string
}

func setupTest(t *testing.T) (*exitMocks, string, func()) {
	mocks := new(exitMocks)
	oldFatalln, oldFatalf, oldExit := logFatalln, logFatalf, osExit
	oldLookPath, oldStdOut := lookPathFn, logStdOut
	logFatalln = func(v ...interface{}) {
		mocks.fatalCalls++
	}
	logFatalf = func(format string, v ...interface{}) {
		mocks.fatalCalls++
	}
	osExit = func(code int) {
		mocks.exitCodes = append(mocks.exitCodes, code)
	}
	lookPathFn = func(string) (string, error) {
		return "/usr/bin/dvc", nil
	}
	logStdOut = func(format string, v ...interface{}) (int, error) {
		s := fmt.Sprintf(format, v...)
		mocks.stdout += s
		return len(s), nil
	}
	dir, err := ioutil.TempDir("", "dvcboot-cli-test")
	require.NoError(t, err)
	return mocks, dir, func() {
		logFatalln, logFatalf, osExit = oldFatalln, oldFatalf, oldExit
		lookPathFn, logStdOut = oldLookPath, oldStdOut
		os.RemoveAll(dir)
	}
}

func runCommand(t *testing.T, args ...string) {
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func TestCLIBootstrap(t *testing.T) {
	mocks, dir, cleanup := setupTest(t)
	defer cleanup()

	runCommand(t, "--dir", dir, "--loglevel", "none")
	require.Zero(t, mocks.fatalCalls)

	configured, err := ioutil.ReadFile(filepath.Join(dir, ".dvc", "config"))
	require.NoError(t, err)
	assert.Regexp(t, configuredURLPattern, string(configured))

	// second run leaves the file untouched
	runCommand(t, "--dir", dir, "--loglevel", "none")
	require.Zero(t, mocks.fatalCalls)
	after, err := ioutil.ReadFile(filepath.Join(dir, ".dvc", "config"))
	require.NoError(t, err)
	assert.Equal(t, configured, after)
}

func TestCLIBootstrapMissingTool(t *testing.T) {
	mocks, dir, cleanup := setupTest(t)
	defer cleanup()
	lookPathFn = func(name string) (string, error) {
		return "", errors.New(name + ": executable file not found in $PATH")
	}

	runCommand(t, "--dir", dir, "--loglevel", "none")
	require.Equal(t, []int{1}, mocks.exitCodes)

	exists, err := pathExists(filepath.Join(dir, ".dvc"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCLIRemoteGet(t *testing.T) {
	mocks, dir, cleanup := setupTest(t)
	defer cleanup()

	runCommand(t, "--dir", dir, "--loglevel", "none")
	runCommand(t, "remote", "get", "--dir", dir, "--loglevel", "none")
	require.Zero(t, mocks.fatalCalls)
	assert.Regexp(t, regexp.MustCompile(`^s3://ml-cup-dvc/[A-Za-z0-9]{32}\n$`), mocks.stdout)
}

func TestCLIRemoteGetUnconfigured(t *testing.T) {
	mocks, dir, cleanup := setupTest(t)
	defer cleanup()

	runCommand(t, "remote", "get", "--dir", dir, "--loglevel", "none")
	require.Equal(t, []int{2}, mocks.exitCodes)
}

func TestCLIRemoteList(t *testing.T) {
	mocks, dir, cleanup := setupTest(t)
	defer cleanup()

	content := "['remote \"storage\"']\n" +
		"    url = s3://ml-cup-dvc/abc123abc123abc123abc123abc12345\n" +
		"['remote \"scratch\"']\n" +
		"    url = s3://scratch-bucket/xyz\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".dvc"), 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, ".dvc", "config"), []byte(content), 0644))

	runCommand(t, "remote", "list", "--dir", dir, "--loglevel", "none")
	require.Zero(t, mocks.fatalCalls)
	assert.Equal(t,
		"storage\ts3://ml-cup-dvc/abc123abc123abc123abc123abc12345\n"+
			"scratch\ts3://scratch-bucket/xyz\n",
		mocks.stdout)
}

func TestCLIVersion(t *testing.T) {
	mocks, _, cleanup := setupTest(t)
	defer cleanup()

	runCommand(t, "version")
	require.Zero(t, mocks.fatalCalls)
	assert.Contains(t, mocks.stdout, "Version: dev")
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

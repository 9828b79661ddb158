package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
)

var (
	// globals used to patch over calls to os.Exit() and exec.LookPath()
	// during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit
	lookPathFn = exec.LookPath

	// infoLogger wraps informative messages to os.Stdout without
	// cluttering expected output in tests.
	infoLogger = log.New(os.Stdout, "", 0)
	logStdOut  = fmt.Printf
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %v", err))
	}
}

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	osExit(code)
}

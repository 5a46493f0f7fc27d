package testutil

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
)

// TempFile is a test helper that writes data into a new temporary file and
// returns its name. The file is removed when tb and all its subtests
// complete:
//
//	func TestFoo(t *testing.T) {
//	    name := testutil.TempFile(t, []byte("content"))
//
//	    // do something with name
//	    ...
//	}
func TempFile(tb testing.TB, data []byte) string {
	tb.Helper()

	name := filepath.Join(tb.TempDir(), "data")
	if err := os.WriteFile(name, data, 0600); err != nil {
		tb.Fatalf("can't create temp file: %v", err)
	}
	return name
}

// DisableLogging is a test helper that disable logging (in fact it sets its
// level to panic). It returns a function which when called, resets it to its
// previous level. Its useful to be called as follows in test/benchmarks:
//
//	func TestFoo(t *testing.T) {
//	    defer DisableLogging()()
//
//	    // logging is disabled for the whole test
//	}
func DisableLogging() (reset func()) {
	lvl := log.GetLevel()
	log.SetLevel(log.PanicLevel)
	return func() { log.SetLevel(lvl) }
}

// SetLogLevel sets the global log level for the execution of the current tb.
// Though setting the log level is safe for use from concurrent goroutines, it's
// not advised to use SetLogLevel in parallel tests/benchmark, i.e. using
// t.Parallel().
func SetLogLevel(tb testing.TB, level log.Level) {
	cur := log.GetLevel()
	log.SetLevel(level)
	tb.Cleanup(func() { log.SetLevel(cur) })
}

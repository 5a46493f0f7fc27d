package testutil

import (
	"bytes"
	"encoding/binary"
	"os/exec"
	"testing"
)

// Sequence returns the little-endian encoding of the uint32 integers from 0
// to n-1.
func Sequence(n int) []byte {
	buf := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(i))
	}
	return buf
}

// ReferenceCompress compresses data by piping it through the named command
// line tool (gzip, bzip2, xz, zstd, lz4, ...) and returns its output. The
// test is skipped if the tool can't be found.
func ReferenceCompress(tb testing.TB, tool string, data []byte) []byte {
	tb.Helper()

	path, err := exec.LookPath(tool)
	if err != nil {
		tb.Skipf("%s not found: %v", tool, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(path, "-c")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		tb.Fatalf("%s: %v: %s", tool, err, stderr.String())
	}
	return stdout.Bytes()
}

package compiler_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/pebblescript/pebble/internal/filetest"
	"github.com/pebblescript/pebble/lang/compiler"
	"github.com/stretchr/testify/require"
)

var testUpdateCompilerTests = flag.Bool("test.update-compiler-tests", false, "If set, replace expected compiler disassembly test results with actual results.")

func TestDisassembly(t *testing.T) {
	srcDir := filepath.Join("testdata", "in")
	resultDir := filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".pbl") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			p, err := compiler.New(string(src)).Compile()
			require.NoError(t, err)

			filetest.DiffOutput(t, fi, compiler.Dasm(p), resultDir, testUpdateCompilerTests)
		})
	}
}

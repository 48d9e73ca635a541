package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/bazelbuild/rules_go/go/tools/bazel"

	"github.com/stackb/classbridge/pkg/java"
)

func MustPrepareTestFiles(t *testing.T, files []testtools.FileSpec) (tmpDir string, filenames []string, clean func()) {
	tmpDir, err := bazel.NewTmpDir("")
	if err != nil {
		t.Fatal(err)
	}

	cleanup := func() {
		os.RemoveAll(tmpDir)
	}

	filenames = MustWriteTestFiles(t, tmpDir, files)

	return tmpDir, filenames, cleanup
}

func MustWriteTestFiles(t *testing.T, tmpDir string, files []testtools.FileSpec) []string {
	var filenames []string
	for _, file := range files {
		abs := filepath.Join(tmpDir, file.Path)
		dir := filepath.Dir(abs)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if !file.NotExist {
			if err := os.WriteFile(abs, []byte(file.Content), os.ModePerm); err != nil {
				t.Fatal(err)
			}
		}
		filenames = append(filenames, abs)
	}
	return filenames
}

// ClassFileSpec returns a FileSpec that writes the class under its internal
// name, relative to the directory it is written into.
func ClassFileSpec(clazz *java.ClassFile) testtools.FileSpec {
	return testtools.FileSpec{
		Path:    clazz.Name() + java.CLASS_FILE_SUFFIX,
		Content: string(clazz.Marshal()),
	}
}

// MustWriteClassFiles writes each class to dir, laid out by package.
func MustWriteClassFiles(t *testing.T, dir string, classes ...*java.ClassFile) []string {
	files := make([]testtools.FileSpec, len(classes))
	for i, clazz := range classes {
		files[i] = ClassFileSpec(clazz)
	}
	return MustWriteTestFiles(t, dir, files)
}

// MustWriteJar writes a jar containing the given classes.
func MustWriteJar(t *testing.T, filename string, classes ...*java.ClassFile) {
	if err := os.MkdirAll(filepath.Dir(filename), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	if _, err := zw.Create("META-INF/MANIFEST.MF"); err != nil {
		t.Fatal(err)
	}
	for _, clazz := range classes {
		w, err := zw.Create(clazz.Name() + java.CLASS_FILE_SUFFIX)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(clazz.Marshal()); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

// EqualError reports whether errors a and b are considered equal.
// They're equal if both are nil, or both are not nil and a.Error() == b.Error().
func EqualError(a, b error) bool {
	return a == nil && b == nil || a != nil && b != nil && a.Error() == b.Error()
}

// ExpectError asserts that the errors are equal.  Return value is true
// if the "want" argument is non-nil.
func ExpectError(t *testing.T, want, got error) bool {
	if !EqualError(want, got) {
		t.Fatal("errors: want:", want, "got:", got)
	}
	return want != nil
}

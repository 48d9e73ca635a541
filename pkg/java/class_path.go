package java

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	CLASS_FILE_SUFFIX = ".class"
	JAR_FILE_SUFFIX   = ".jar"
)

// ErrClassNotFound is returned when no class path entry holds the requested
// class.
var ErrClassNotFound = errors.New("class not found")

// ClassPathEntry is a single directory or jar on a class path.
type ClassPathEntry interface {
	// ReadClass returns the bytes for the given internal name.
	ReadClass(internalName string) ([]byte, error)
	String() string
}

// DirectoryClassPathEntry reads classes from an exploded directory tree.
type DirectoryClassPathEntry struct {
	directory string
}

func NewDirectoryClassPathEntry(directory string) *DirectoryClassPathEntry {
	return &DirectoryClassPathEntry{directory}
}

func (e *DirectoryClassPathEntry) String() string {
	return e.directory
}

// ReadClass implements ClassPathEntry.
func (e *DirectoryClassPathEntry) ReadClass(internalName string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(e.directory, filepath.FromSlash(internalName)+CLASS_FILE_SUFFIX))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s in %s: %w", internalName, e.directory, ErrClassNotFound)
	}
	return data, err
}

// JarClassPathEntry reads classes from a jar file.  The jar is opened on each
// call.
type JarClassPathEntry struct {
	jarFile string
}

func NewJarClassPathEntry(jarFile string) *JarClassPathEntry {
	return &JarClassPathEntry{jarFile}
}

func (e *JarClassPathEntry) String() string {
	return e.jarFile
}

// Visit calls accept for each class file entry in the jar, with the raw
// bytes and parsed header.
func (e *JarClassPathEntry) Visit(accept func(f *zip.File, data []byte, clazz *ClassFile) error) error {
	r, err := zip.OpenReader(e.jarFile)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, CLASS_FILE_SUFFIX) {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		clazz, err := ReadClassFile(data)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		if err := accept(f, data, clazz); err != nil {
			return err
		}
	}
	return nil
}

// ReadClass implements ClassPathEntry.
func (e *JarClassPathEntry) ReadClass(internalName string) ([]byte, error) {
	r, err := zip.OpenReader(e.jarFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: missing jar %s: %w", internalName, e.jarFile, ErrClassNotFound)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	want := internalName + CLASS_FILE_SUFFIX
	for _, f := range r.File {
		if f.Name == want {
			return readZipFile(f)
		}
	}
	return nil, fmt.Errorf("%s in %s: %w", internalName, e.jarFile, ErrClassNotFound)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// ClassPath is an ordered list of entries; the first entry holding a class
// wins.
type ClassPath struct {
	entries []ClassPathEntry
}

// NewClassPath parses a colon-separated class path string.  Entries ending
// in .jar are jars, everything else is a directory.
func NewClassPath(classPath string) (*ClassPath, error) {
	var paths []string
	for _, seg := range strings.Split(classPath, string(os.PathListSeparator)) {
		if seg != "" {
			paths = append(paths, seg)
		}
	}
	return NewClassPathFromEntries(paths...)
}

// NewClassPathFromEntries builds a class path from individual paths.
func NewClassPathFromEntries(paths ...string) (*ClassPath, error) {
	cp := &ClassPath{}
	for _, entry := range paths {
		path, err := filepath.Abs(entry)
		if err != nil {
			return nil, fmt.Errorf("class path entry %q: %w", entry, err)
		}
		if strings.HasSuffix(entry, JAR_FILE_SUFFIX) {
			cp.entries = append(cp.entries, NewJarClassPathEntry(path))
		} else {
			cp.entries = append(cp.entries, NewDirectoryClassPathEntry(path))
		}
	}
	return cp, nil
}

func (cp *ClassPath) Entries() []ClassPathEntry {
	return cp.entries
}

func (cp *ClassPath) String() string {
	entries := make([]string, len(cp.entries))
	for i, entry := range cp.entries {
		entries[i] = entry.String()
	}
	return strings.Join(entries, string(os.PathListSeparator))
}

// ReadClass returns the bytes of the first entry that holds the class.
// Errors other than ErrClassNotFound stop the search.
func (cp *ClassPath) ReadClass(internalName string) ([]byte, error) {
	for _, entry := range cp.entries {
		data, err := entry.ReadClass(internalName)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrClassNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", internalName, ErrClassNotFound)
}

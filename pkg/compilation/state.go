package compilation

import (
	"archive/zip"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/stackb/classbridge/pkg/java"
	"github.com/stackb/classbridge/pkg/logger"
	"github.com/stackb/classbridge/pkg/resolver"
)

// DefaultIncludes is used by AddDirectory when no include patterns are
// given.
var DefaultIncludes = []string{"**/*" + java.CLASS_FILE_SUFFIX}

// State implements resolver.CompilationState over class files collected from
// directories, jars and raw bytes.  When two sources provide the same class
// the first one wins.
type State struct {
	logger  logger.TreeLogger
	classes map[string]*resolver.CompiledClass
	origins map[string]string
}

// NewState constructs an empty State.
func NewState(treeLogger logger.TreeLogger) *State {
	if treeLogger == nil {
		treeLogger = logger.Discard
	}
	return &State{
		logger:  treeLogger,
		classes: make(map[string]*resolver.CompiledClass),
		origins: make(map[string]string),
	}
}

// ClassFileMap implements resolver.CompilationState.
func (s *State) ClassFileMap() map[string]*resolver.CompiledClass {
	return s.classes
}

// Len returns the number of classes.
func (s *State) Len() int {
	return len(s.classes)
}

// InternalNames returns the sorted class names.
func (s *State) InternalNames() []string {
	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddClass adds a class from its bytes.  origin names where the bytes came
// from, for diagnostics.
func (s *State) AddClass(data []byte, origin string) error {
	clazz, err := java.ReadClassFile(data)
	if err != nil {
		return fmt.Errorf("%s: %w", origin, err)
	}
	s.put(clazz, data, origin)
	return nil
}

// AddDirectory adds every class file under dir that matches one of the
// include patterns and none of the exclude patterns.  Patterns are
// doublestar globs relative to dir.  It returns the number of files read.
func (s *State) AddDirectory(dir string, includes, excludes []string) (int, error) {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}
	fsys := os.DirFS(dir)

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range includes {
		names, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return 0, fmt.Errorf("glob %q in %s: %w", pattern, dir, err)
		}
		for _, name := range names {
			if seen[name] || path.Ext(name) != java.CLASS_FILE_SUFFIX {
				continue
			}
			seen[name] = true
			if excluded(name, excludes) {
				continue
			}
			files = append(files, name)
		}
	}
	sort.Strings(files)

	for _, name := range files {
		filename := filepath.Join(dir, filepath.FromSlash(name))
		data, err := os.ReadFile(filename)
		if err != nil {
			return 0, err
		}
		if err := s.AddClass(data, filename); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

// AddJar adds every class in the given jar.  It returns the number of class
// entries read.
func (s *State) AddJar(filename string) (int, error) {
	n := 0
	entry := java.NewJarClassPathEntry(filename)
	if err := entry.Visit(func(f *zip.File, data []byte, clazz *java.ClassFile) error {
		s.put(clazz, data, filename+"!"+f.Name)
		n++
		return nil
	}); err != nil {
		return 0, fmt.Errorf("reading jar %s: %w", filename, err)
	}
	return n, nil
}

func (s *State) put(clazz *java.ClassFile, data []byte, origin string) {
	name := clazz.Name()
	if prev, ok := s.origins[name]; ok {
		s.logger.Log(logger.WARN, fmt.Sprintf("duplicate class %s in %s (already provided by %s)", name, origin, prev))
		return
	}
	s.origins[name] = origin
	s.classes[name] = &resolver.CompiledClass{
		InternalName: name,
		PackageName:  clazz.PackageName(),
		Bytes:        data,
	}
	s.logger.Log(logger.SPAM, fmt.Sprintf("added %s from %s", name, origin))
}

func excluded(name string, excludes []string) bool {
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

package bridgeconfig

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/stackb/classbridge/pkg/compilation"
	"github.com/stackb/classbridge/pkg/java"
	"github.com/stackb/classbridge/pkg/logger"
)

// BridgeSpec configures a bridge: where the host classes live, where the
// compilation state comes from and which packages stay on the host.
type BridgeSpec struct {
	// ExceptedPackages are package names always loaded from the host.
	ExceptedPackages []string `json:"excepted_packages,omitempty"`
	// ClassPath lists the host directories and jars, in order.
	ClassPath []string `json:"class_path,omitempty"`
	// Generated lists the compilation state sources, in order.
	Generated []*GeneratedSpec `json:"generated,omitempty"`
	// LogLevel is the diagnostic threshold (ERROR, WARN, INFO, ...).
	LogLevel string `json:"log_level,omitempty"`
}

// GeneratedSpec is a directory or a jar of generated classes.
type GeneratedSpec struct {
	Dir     string   `json:"dir,omitempty"`
	Jar     string   `json:"jar,omitempty"`
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

func (g *GeneratedSpec) String() string {
	if g.Jar != "" {
		return g.Jar
	}
	return g.Dir
}

// Validate checks the spec for obvious mistakes.
func (s *BridgeSpec) Validate() error {
	var errs []error
	for i, g := range s.Generated {
		switch {
		case g.Dir == "" && g.Jar == "":
			errs = append(errs, fmt.Errorf("generated[%d]: one of dir or jar is required", i))
		case g.Dir != "" && g.Jar != "":
			errs = append(errs, fmt.Errorf("generated[%d]: dir and jar are mutually exclusive", i))
		case g.Jar != "" && (len(g.Include) > 0 || len(g.Exclude) > 0):
			errs = append(errs, fmt.Errorf("generated[%d]: include/exclude only apply to dir", i))
		}
	}
	if s.LogLevel != "" {
		if _, err := logger.ParseType(s.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Merge appends the lists of other to s.  A non-empty LogLevel in other
// replaces the one in s.
func (s *BridgeSpec) Merge(other *BridgeSpec) {
	if other == nil {
		return
	}
	s.ExceptedPackages = append(s.ExceptedPackages, other.ExceptedPackages...)
	s.ClassPath = append(s.ClassPath, other.ClassPath...)
	s.Generated = append(s.Generated, other.Generated...)
	if other.LogLevel != "" {
		s.LogLevel = other.LogLevel
	}
}

// Level returns the configured level, WARN if unset.
func (s *BridgeSpec) Level() logger.Type {
	if s.LogLevel == "" {
		return logger.WARN
	}
	level, err := logger.ParseType(s.LogLevel)
	if err != nil {
		return logger.WARN
	}
	return level
}

// NewClassPath builds the host class path.
func (s *BridgeSpec) NewClassPath() (*java.ClassPath, error) {
	return java.NewClassPathFromEntries(s.ClassPath...)
}

// LoadState reads all generated sources into a compilation state.  progress
// is called after each source with the number of classes it contributed.
func (s *BridgeSpec) LoadState(treeLogger logger.TreeLogger, progress func(current, total int, g *GeneratedSpec, n int)) (*compilation.State, error) {
	state := compilation.NewState(treeLogger)
	for i, g := range s.Generated {
		var n int
		var err error
		if g.Jar != "" {
			n, err = state.AddJar(g.Jar)
		} else {
			n, err = state.AddDirectory(g.Dir, g.Include, g.Exclude)
		}
		if err != nil {
			return nil, fmt.Errorf("generated source %s: %w", g, err)
		}
		if progress != nil {
			progress(i+1, len(s.Generated), g, n)
		}
	}
	return state, nil
}

// resolvePaths makes relative paths relative to dir.
func (s *BridgeSpec) resolvePaths(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i, p := range s.ClassPath {
		s.ClassPath[i] = abs(p)
	}
	for _, g := range s.Generated {
		g.Dir = abs(g.Dir)
		g.Jar = abs(g.Jar)
	}
}

package compilation_test

import (
	"path/filepath"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stackb/classbridge/pkg/compilation"
	"github.com/stackb/classbridge/pkg/java"
	"github.com/stackb/classbridge/pkg/logger"
	"github.com/stackb/classbridge/pkg/resolver"
	"github.com/stackb/classbridge/pkg/testutil"
)

func class(name string) *java.ClassFile {
	return java.NewClassFile(name, "java/lang/Object", java.ACC_PUBLIC)
}

func TestStateAddDirectory(t *testing.T) {
	for name, tc := range map[string]struct {
		classes  []*java.ClassFile
		extra    []testtools.FileSpec
		includes []string
		excludes []string
		want     []string
	}{
		"degenerate": {
			want: []string{},
		},
		"default includes": {
			classes: []*java.ClassFile{class("com/gen/A"), class("com/gen/sub/B"), class("Root")},
			extra:   []testtools.FileSpec{{Path: "com/gen/A.java", Content: "class A {}"}},
			want:    []string{"Root", "com/gen/A", "com/gen/sub/B"},
		},
		"includes": {
			classes:  []*java.ClassFile{class("com/gen/A"), class("com/other/B")},
			includes: []string{"com/gen/**"},
			want:     []string{"com/gen/A"},
		},
		"excludes": {
			classes:  []*java.ClassFile{class("com/gen/A"), class("com/gen/A$1"), class("com/gen/B")},
			excludes: []string{"**/*$*.class"},
			want:     []string{"com/gen/A", "com/gen/B"},
		},
		"overlapping includes count once": {
			classes:  []*java.ClassFile{class("com/gen/A")},
			includes: []string{"**/*.class", "com/**/*.class"},
			want:     []string{"com/gen/A"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			tmpDir, _, cleanup := testutil.MustPrepareTestFiles(t, tc.extra)
			defer cleanup()
			testutil.MustWriteClassFiles(t, tmpDir, tc.classes...)

			treeLogger := testutil.NewTestLogger(t)
			state := compilation.NewState(treeLogger)
			n, err := state.AddDirectory(tmpDir, tc.includes, tc.excludes)
			require.NoError(t, err)
			require.Equal(t, len(tc.want), n)

			if diff := cmp.Diff(tc.want, state.InternalNames()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			require.Zero(t, treeLogger.Count(logger.WARN))
		})
	}
}

func TestStateAddJarDuplicates(t *testing.T) {
	tmpDir, _, cleanup := testutil.MustPrepareTestFiles(t, nil)
	defer cleanup()

	dir := filepath.Join(tmpDir, "classes")
	testutil.MustWriteClassFiles(t, dir, java.NewClassFile("com/gen/A", "com/gen/Base", java.ACC_PUBLIC))
	jar := filepath.Join(tmpDir, "gen.jar")
	testutil.MustWriteJar(t, jar, class("com/gen/A"), class("com/gen/C"))

	treeLogger := testutil.NewTestLogger(t)
	state := compilation.NewState(treeLogger)

	_, err := state.AddDirectory(dir, nil, nil)
	require.NoError(t, err)
	n, err := state.AddJar(jar)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 2, state.Len())
	require.Equal(t, 1, treeLogger.Count(logger.WARN))

	// first source wins
	a := state.ClassFileMap()["com/gen/A"]
	clazz, err := java.ReadClassFile(a.Bytes)
	require.NoError(t, err)
	require.Equal(t, "com/gen/Base", clazz.SuperName())
	require.Equal(t, "com.gen", a.PackageName)
}

func TestStateAddClassError(t *testing.T) {
	state := compilation.NewState(nil)
	err := state.AddClass([]byte("not a class"), "test")
	require.Error(t, err)
	require.Zero(t, state.Len())
}

func TestStandardContextFeedsBridge(t *testing.T) {
	state := compilation.NewState(nil)
	require.NoError(t, state.AddClass(class("com/gen/Foo").Marshal(), "test"))

	ctx := compilation.NewStandardContext("test", state)
	require.Equal(t, "test", ctx.String())

	var _ resolver.CompilationStateProvider = ctx

	r := resolver.NewBridgeResolver(ctx, testutil.NewTestLogger(t), nil, nil, nil)
	sym, err := r.Resolve("com.gen.Foo")
	require.NoError(t, err)
	require.Equal(t, resolver.OriginCompilationState, sym.Origin)
}

func TestStandardContextWithoutState(t *testing.T) {
	ctx := compilation.NewStandardContext("empty", nil)
	require.Nil(t, ctx.CompilationState())
}

package bridgeconfig

import (
	"path/filepath"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stackb/classbridge/pkg/java"
	"github.com/stackb/classbridge/pkg/logger"
	"github.com/stackb/classbridge/pkg/testutil"
)

func TestReadBridgeSpec(t *testing.T) {
	for name, tc := range map[string]struct {
		content string
		want    *BridgeSpec
		wantErr string
	}{
		"degenerate": {
			content: "{}",
			want:    &BridgeSpec{},
		},
		"relative paths": {
			content: `{
  "excepted_packages": ["com.google.inject"],
  "class_path": ["lib/host.jar", "/abs/classes"],
  "generated": [
    {"dir": "gen", "include": ["com/**/*.class"], "exclude": ["**/*Test.class"]},
    {"jar": "/abs/super.jar"}
  ],
  "log_level": "debug"
}`,
			want: &BridgeSpec{
				ExceptedPackages: []string{"com.google.inject"},
				ClassPath:        []string{"{DIR}/lib/host.jar", "/abs/classes"},
				Generated: []*GeneratedSpec{
					{Dir: "{DIR}/gen", Include: []string{"com/**/*.class"}, Exclude: []string{"**/*Test.class"}},
					{Jar: "/abs/super.jar"},
				},
				LogLevel: "debug",
			},
		},
		"bad json": {
			content: "{",
			wantErr: "unmarshal",
		},
		"missing source": {
			content: `{"generated": [{}]}`,
			wantErr: "one of dir or jar is required",
		},
		"both sources": {
			content: `{"generated": [{"dir": "a", "jar": "b.jar"}]}`,
			wantErr: "mutually exclusive",
		},
		"jar with globs": {
			content: `{"generated": [{"jar": "b.jar", "include": ["**"]}]}`,
			wantErr: "only apply to dir",
		},
		"bad level": {
			content: `{"log_level": "loud"}`,
			wantErr: "unknown log type",
		},
	} {
		t.Run(name, func(t *testing.T) {
			tmpDir, files, cleanup := testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
				{Path: "bridge.json", Content: tc.content},
			})
			defer cleanup()

			got, err := ReadBridgeSpec(files[0])
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)

			if tc.want.ClassPath != nil {
				for i, p := range tc.want.ClassPath {
					if len(p) > 5 && p[:5] == "{DIR}" {
						tc.want.ClassPath[i] = filepath.Join(tmpDir, p[6:])
					}
				}
				for _, g := range tc.want.Generated {
					if len(g.Dir) > 5 && g.Dir[:5] == "{DIR}" {
						g.Dir = filepath.Join(tmpDir, g.Dir[6:])
					}
				}
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteReadBridgeSpec(t *testing.T) {
	tmpDir, _, cleanup := testutil.MustPrepareTestFiles(t, nil)
	defer cleanup()

	want := &BridgeSpec{
		ExceptedPackages: []string{"com.foo."},
		ClassPath:        []string{filepath.Join(tmpDir, "classes")},
		LogLevel:         "INFO",
	}
	filename := filepath.Join(tmpDir, "bridge.json")
	require.NoError(t, WriteJSONFile(filename, want))

	got, err := ReadBridgeSpec(filename)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	require.Equal(t, logger.INFO, got.Level())
}

func TestMerge(t *testing.T) {
	spec := &BridgeSpec{
		ExceptedPackages: []string{"a"},
		LogLevel:         "WARN",
	}
	spec.Merge(nil)
	spec.Merge(&BridgeSpec{
		ExceptedPackages: []string{"b"},
		ClassPath:        []string{"x.jar"},
		Generated:        []*GeneratedSpec{{Dir: "gen"}},
	})
	spec.Merge(&BridgeSpec{LogLevel: "ERROR"})

	want := &BridgeSpec{
		ExceptedPackages: []string{"a", "b"},
		ClassPath:        []string{"x.jar"},
		Generated:        []*GeneratedSpec{{Dir: "gen"}},
		LogLevel:         "ERROR",
	}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	require.Equal(t, logger.ERROR, spec.Level())
	require.Equal(t, logger.WARN, (&BridgeSpec{}).Level())
}

func TestLoadState(t *testing.T) {
	tmpDir, _, cleanup := testutil.MustPrepareTestFiles(t, nil)
	defer cleanup()

	gen := filepath.Join(tmpDir, "gen")
	testutil.MustWriteClassFiles(t, gen,
		java.NewClassFile("com/gen/A", "java/lang/Object", java.ACC_PUBLIC),
		java.NewClassFile("com/gen/ATest", "java/lang/Object", java.ACC_PUBLIC),
	)
	jar := filepath.Join(tmpDir, "super.jar")
	testutil.MustWriteJar(t, jar, java.NewClassFile("com/sup/B", "java/lang/Object", java.ACC_PUBLIC))

	spec := &BridgeSpec{
		Generated: []*GeneratedSpec{
			{Dir: gen, Exclude: []string{"**/*Test.class"}},
			{Jar: jar},
		},
	}

	type step struct {
		Current, Total, N int
		Source            string
	}
	var steps []step
	state, err := spec.LoadState(testutil.NewTestLogger(t), func(current, total int, g *GeneratedSpec, n int) {
		steps = append(steps, step{current, total, n, g.String()})
	})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"com/gen/A", "com/sup/B"}, state.InternalNames()); diff != "" {
		t.Errorf("classes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]step{{1, 2, 1, gen}, {2, 2, 1, jar}}, steps); diff != "" {
		t.Errorf("progress (-want +got):\n%s", diff)
	}

	_, err = (&BridgeSpec{Generated: []*GeneratedSpec{{Jar: filepath.Join(tmpDir, "missing.jar")}}}).LoadState(nil, nil)
	require.Error(t, err)
}

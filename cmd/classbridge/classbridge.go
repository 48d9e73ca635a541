package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"

	"github.com/stackb/classbridge/pkg/bridgeconfig"
	"github.com/stackb/classbridge/pkg/compilation"
	"github.com/stackb/classbridge/pkg/java"
	"github.com/stackb/classbridge/pkg/logger"
	"github.com/stackb/classbridge/pkg/resolver"
)

func main() {
	log.SetPrefix("classbridge: ")
	log.SetFlags(0) // don't print timestamps

	conf, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if err := run(conf, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(conf *config, stdout, stderr io.Writer) error {
	spec, err := makeSpec(conf)
	if err != nil {
		return err
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(logger.ZerologLevel(spec.Level())).
		With().Timestamp().Logger()
	treeLogger := logger.NewZerologTreeLogger(zl)

	var output mobyprogress.Output
	if conf.progress {
		output = mobyprogress.NewProgressOutput(mobyprogress.NewOut(stderr))
	}

	state, err := spec.LoadState(treeLogger, func(current, total int, g *bridgeconfig.GeneratedSpec, n int) {
		zl.Debug().Str("source", g.String()).Int("classes", n).Msg("loaded generated classes")
		if output != nil {
			writeLoadProgress(output, current, total)
		}
	})
	if err != nil {
		return err
	}

	classPath, err := spec.NewClassPath()
	if err != nil {
		return err
	}

	bridge := resolver.NewBridgeResolver(
		compilation.NewStandardContext("classbridge", state),
		treeLogger,
		resolver.NewClassPathLoader(classPath),
		resolver.NewPackageRegistry(),
		spec.ExceptedPackages,
	)
	zl.Debug().
		Strs("excepted", bridge.ExceptedPackages()).
		Int("generated", state.Len()).
		Str("class_path", classPath.String()).
		Msg("bridge ready")

	var failed []string
	for i, name := range conf.names {
		sym, err := resolve(bridge, java.BinaryName(name), conf.link)
		if err != nil {
			zl.Error().Err(err).Str("name", name).Msg("resolve failed")
			fmt.Fprintf(stdout, "%s\t%s\n", name, "not-found")
			failed = append(failed, name)
		} else {
			fmt.Fprintf(stdout, "%s\t%s\n", sym.Name, sym.Origin)
			if conf.debug {
				spew.Fdump(stderr, sym.ClassFile)
			}
		}
		if output != nil {
			writeResolveProgress(output, i+1, len(conf.names), i+1 == len(conf.names))
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d symbols could not be resolved: %s", len(failed), len(conf.names), strings.Join(failed, ", "))
	}
	return nil
}

func resolve(bridge *resolver.BridgeResolver, name string, link bool) (*resolver.Symbol, error) {
	if link {
		return bridge.ResolveAndLink(name)
	}
	return bridge.Resolve(name)
}

// makeSpec reads the optional config file and layers the flags on top.
func makeSpec(conf *config) (*bridgeconfig.BridgeSpec, error) {
	spec := &bridgeconfig.BridgeSpec{}
	if conf.configFile != "" {
		fromFile, err := bridgeconfig.ReadBridgeSpec(conf.configFile)
		if err != nil {
			return nil, err
		}
		spec = fromFile
	}

	fromFlags := &bridgeconfig.BridgeSpec{
		ExceptedPackages: conf.exceptedPackage,
		LogLevel:         conf.logLevel,
	}
	for _, entry := range strings.Split(conf.classPath, string(os.PathListSeparator)) {
		if entry != "" {
			fromFlags.ClassPath = append(fromFlags.ClassPath, entry)
		}
	}
	for _, dir := range conf.generatedDirs {
		fromFlags.Generated = append(fromFlags.Generated, &bridgeconfig.GeneratedSpec{Dir: dir})
	}
	for _, jar := range conf.generatedJars {
		fromFlags.Generated = append(fromFlags.Generated, &bridgeconfig.GeneratedSpec{Jar: jar})
	}
	spec.Merge(fromFlags)

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

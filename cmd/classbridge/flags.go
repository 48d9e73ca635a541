package main

import (
	"flag"
	"strings"
)

// stringSlice is a repeatable string flag.
type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ",")
}

// Set implements the flag.Value interface.
func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

type config struct {
	configFile      string
	classPath       string
	generatedDirs   stringSlice
	generatedJars   stringSlice
	exceptedPackage stringSlice
	logLevel        string
	link            bool
	progress        bool
	debug           bool
	names           []string
}

func parseFlags(args []string) (*config, error) {
	conf := &config{}
	fs := flag.NewFlagSet("classbridge", flag.ContinueOnError)

	fs.StringVar(&conf.configFile, "config", "", "optional path to a JSON bridge spec")
	fs.StringVar(&conf.classPath, "class_path", "", "host class path (directories and jars, path-list separated)")
	fs.Var(&conf.generatedDirs, "generated_dir", "directory of generated class files (repeatable)")
	fs.Var(&conf.generatedJars, "generated_jar", "jar of generated or super-source class files (repeatable)")
	fs.Var(&conf.exceptedPackage, "excepted_package", "package always loaded from the host class path (repeatable)")
	fs.StringVar(&conf.logLevel, "log_level", "", "diagnostic threshold: ERROR, WARN, INFO, TRACE, DEBUG, SPAM, ALL")
	fs.BoolVar(&conf.link, "link", false, "link each symbol after resolving it")
	fs.BoolVar(&conf.progress, "progress", false, "report progress on stderr")
	fs.BoolVar(&conf.debug, "debug", false, "dump resolved class headers on stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	conf.names = fs.Args()
	return conf, nil
}

package main

import (
	"flag"
	"fmt"
	"os"
)

type AppFlags struct {
	BaseFile    string
	CompareFile string
	ConfigFile  string
	OutputFile  string
}

func ParseFlags() AppFlags {
	baseFile := flag.String("base", "", "Path to the base document JSON (pre-extracted page models).")
	baseFileAlias := flag.String("b", "", "Alias for -base")

	compareFile := flag.String("compare", "", "Path to the compare document JSON (pre-extracted page models).")
	compareFileAlias := flag.String("n", "", "Alias for -compare, the new document version (-c is taken by -config).")

	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. Defaults apply if not set.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	outputFile := flag.String("output", "", "Path to write the comparison result JSON. Writes to stdout if not set.")
	outputFileAlias := flag.String("o", "", "Alias for -output")

	flag.Parse()

	flags := AppFlags{}

	if *baseFile != "" {
		flags.BaseFile = *baseFile
	} else if *baseFileAlias != "" {
		flags.BaseFile = *baseFileAlias
	}

	if *compareFile != "" {
		flags.CompareFile = *compareFile
	} else if *compareFileAlias != "" {
		flags.CompareFile = *compareFileAlias
	}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	if *outputFile != "" {
		flags.OutputFile = *outputFile
	} else if *outputFileAlias != "" {
		flags.OutputFile = *outputFileAlias
	}

	if flags.BaseFile == "" || flags.CompareFile == "" {
		fmt.Fprintln(os.Stderr, "[FATAL] both -base and -compare arguments are required")
		os.Exit(1)
	}

	return flags
}

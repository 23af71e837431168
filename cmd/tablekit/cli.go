package main

import (
	"github.com/jessevdk/go-flags"
)

// Option defines command line options.
type Option struct {
	Config    string `short:"c" long:"config" description:"run config (.json, .yaml/.yml or .toml)"`
	ChunkSize int    `long:"chunk-size" description:"stream rows in chunks of this size when every step is row-local; 0 disables streaming" default:"0"`
	LogLevel  string `long:"log-level" description:"debug, info, warn or error" default:"info"`
	Profile   bool   `long:"profile" description:"print a profile of the output table to stderr"`
	Version   bool   `short:"v" long:"version" description:"display the version and exit"`
}

func parseCLI(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "tablekit"
	parser.Usage = "[OPTIONS]"
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return opt, nil
}

func isHelp(err error) bool {
	return flags.WroteHelp(err)
}

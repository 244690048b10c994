// Copyright 2025 The WordRank Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordrank suggestion server and CLI application.

WordRank provides prefix-based word suggestions ranked by a mutable weight.
Words carry a frequency/importance weight that accumulates across repeated
inserts, and queries return all indexed words under a prefix ordered by
weight, heaviest first. It can operate as a MessagePack IPC server for
integration with editors and other tools, or as an interactive CLI for
testing and debugging.

# Usage

Start the server with a seed dictionary:

	wordrank -dict words.txt

Run in CLI mode with a suggestion limit:

	wordrank -c -dict words.txt -limit 10

Dictionaries are plain text with one "word weight" pair per line, or the
compact binary format produced by the dictionary package (-dict file ending
in .bin). Repeated words accumulate weight, so several files can be layered.

# Configuration

Runtime configuration lives in a TOML file that is created with defaults on
first run:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60

	[index]
	min_weight_threshold = 0
	hot_cache_prefixes = 256

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. A completion
request carries a prefix and optional limit:

	{"id": "req1", "p": "app", "l": 20}

and the response lists suggestions ranked by weight:

	{"id": "req1", "s": [{"w": "apple", "r": 1, "f": 5}], "c": 1, "t": 0}

Control messages add words at runtime, fetch index stats, or update the
server limits without a restart. See the server package doc for the full
message set.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/wordrank/internal/cli"
	"github.com/bastiangx/wordrank/internal/logger"
	"github.com/bastiangx/wordrank/pkg/config"
	"github.com/bastiangx/wordrank/pkg/dictionary"
	"github.com/bastiangx/wordrank/pkg/server"
	"github.com/bastiangx/wordrank/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordrank"
	gh      = "https://github.com/bastiangx/wordrank"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Dictionary file to seed the index (.txt or .bin)")
	configPathFlag := flag.String("config", "", "Path to config.toml (default: user config dir)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only) - queries raw input (numbers, repeats, etc)")

	flag.Parse()

	if *showVersion {
		vlog := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		vlog.SetStyles(styles)

		vlog.Print("")
		vlog.Print("[ WordRank ] Weighted prefix word suggestions!")
		vlog.Print("", "version", Version)
		vlog.Print("")
		vlog.Print("use -h or --help to see available options")
		vlog.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	configPath := *configPathFlag
	if configPath == "" {
		var err error
		configPath, err = config.GetDefaultConfigPath()
		if err != nil {
			log.Warnf("Failed to determine config path: %v. Using ./wordrank.toml", err)
			configPath = "wordrank.toml"
		}
	}
	log.Debugf("Using config file: (%s)", configPath)

	appConfig, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}

	completer := suggest.NewCachedCompleter(appConfig.Index.HotCachePrefixes)
	completer.SetMinWeight(appConfig.Index.MinWeightThreshold)

	if *dictPath != "" {
		count, err := loadDictionary(*dictPath, completer)
		if err != nil {
			log.Fatalf("Failed to load dictionary: %v", err)
			os.Exit(1)
		}
		log.Debugf("Seeded index with %d dictionary records", count)
	} else {
		log.Warn("No dictionary specified, starting with an empty index...")
	}

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, appConfig, configPath)

	showStartupInfo(*dictPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// loadDictionary picks the loader from the file extension.
func loadDictionary(path string, completer *suggest.Completer) (int, error) {
	if strings.HasSuffix(path, ".bin") {
		return dictionary.LoadBinaryFile(path, completer)
	}
	return dictionary.LoadTextFile(path, completer)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" WordRank ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	if dictPath != "" {
		log.Infof("dictionary: ( %s )", dictPath)
	}
	log.Info("status: ready")
	println("==========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

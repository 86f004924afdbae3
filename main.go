package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hadydotai/aoc2019/intcode"
	"hadydotai/aoc2019/logging"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	LogLevel logging.LogLevel `short:"l" long:"loglevel" description:"Set the level of logging" choice:"none" choice:"info" choice:"debug" default:"info"`
}

var (
	opts        Options
	flagsparser = flags.NewParser(&opts, flags.Default)

	stdout  io.Writer = os.Stdout
	logSink io.Writer = os.Stderr
)

// handleCommand leaves reporting of the returned error to go-flags (flags.PrintErrors).
func handleCommand(command flags.Commander, args []string) error {
	logging.SetupWriter(opts.LogLevel, logSink)
	return command.Execute(args)
}

func main() {
	flagsparser.CommandHandler = handleCommand

	if _, err := flagsparser.Parse(); err != nil {
		switch flagsErr := err.(type) {
		case flags.ErrorType:
			if flagsErr == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		default:
			os.Exit(1)
		}
	}
}

// loadProgram reads and parses a program file.
func loadProgram(path string) ([]int64, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file %s: %w", path, err)
	}
	program, err := intcode.Parse(path, string(source))
	if err != nil {
		return nil, err
	}
	logging.Log(logging.LogLevelDebug, "Loaded program", "file", path, "cells", len(program))
	return program, nil
}

// parsePatches turns ADDR=VALUE pairs into a patch set.
func parsePatches(args []string) (map[int]int64, error) {
	patches := make(map[int]int64, len(args))
	for _, arg := range args {
		addrText, valueText, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid patch %q, expected ADDR=VALUE", arg)
		}
		addr, err := strconv.Atoi(addrText)
		if err != nil || addr < 0 {
			return nil, fmt.Errorf("invalid patch address in %q", arg)
		}
		value, err := strconv.ParseInt(valueText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid patch value in %q: %w", arg, err)
		}
		patches[addr] = value
	}
	return patches, nil
}

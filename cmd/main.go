package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nevisdale/chiptic/internal/audio"
	"github.com/nevisdale/chiptic/internal/chip8"
	"github.com/nevisdale/chiptic/internal/ui"
	"github.com/pkg/profile"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	rom    string
	quirks string

	ipf   int
	scale int

	skipUnknown bool
	trace       bool
	debug       bool
	quiet       bool
	profiling   bool
}

func main() {
	options := readArguments()
	logger := createLogger(options)

	if !options.quiet {
		printBanner(options)
	}

	if err := run(logger, options); err != nil {
		logger.Fatal(err.Error())
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.quirks, "quirks", "vip", "quirks preset to run with: vip or schip")
	flags.IntVar(&options.ipf, "ipf", 11, "instructions to execute per frame")
	flags.IntVar(&options.scale, "scale", 8, "size of one CHIP-8 pixel in window pixels")
	flags.BoolVar(&options.skipUnknown, "skip-unknown", false, "skip unknown opcodes instead of pausing")
	flags.BoolVar(&options.trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&options.debug, "debug", false, "enable debug logging and open the debug panel")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&options.profiling, "profile", false, "write a cpu profile to the working directory")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner(options)
		fmt.Printf("usage: chiptic [options] <rom file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.rom = args[0]

	return options
}

func createLogger(options optionFlags) *log.Logger {
	cfg := log.DefaultConfig()
	if options.debug {
		cfg.Level = log.DebugLevel
	} else if options.quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func printBanner(options optionFlags) {
	if !options.quiet {
		fmt.Println("[------------------------------------]")
		fmt.Println("[ chiptic - a CHIP-8 virtual machine  ]")
		fmt.Printf("[------------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

func quirksFromName(name string) (chip8.Quirks, error) {
	switch strings.ToLower(name) {
	case "vip":
		return chip8.VIPQuirks(), nil
	case "schip":
		return chip8.SCHIPQuirks(), nil
	}
	return chip8.Quirks{}, fmt.Errorf("unknown quirks preset %q, valid presets: vip, schip", name)
}

func run(logger *log.Logger, options optionFlags) error {
	if options.profiling {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	if options.ipf < 1 {
		return fmt.Errorf("ipf must be at least 1")
	}
	if options.scale < 1 {
		return fmt.Errorf("scale must be at least 1")
	}

	quirks, err := quirksFromName(options.quirks)
	if err != nil {
		return err
	}

	rom, err := chip8.NewROMFromFile(options.rom)
	if err != nil {
		return fmt.Errorf("couldn't load the rom: %w", err)
	}
	logger.Info("loaded the rom",
		log.String("file", options.rom),
		log.Int("size", rom.Size()))

	bus := chip8.NewBus(quirks)
	bus.LoadROM(rom)

	beeper, err := audio.NewBeeper()
	if err != nil {
		logger.Warn("running without sound", log.Err(err))
		beeper = nil
	}
	defer func() {
		_ = beeper.Close()
	}()

	u := ui.New(bus, beeper, logger, ui.Config{
		Title:       fmt.Sprintf("chiptic - %s", filepath.Base(options.rom)),
		Scale:       options.scale,
		IPF:         options.ipf,
		SkipUnknown: options.skipUnknown,
		Trace:       options.trace,
		Debug:       options.debug,
	})

	if err := ui.RunUI(u); err != nil {
		return fmt.Errorf("couldn't run the ui: %w", err)
	}
	return nil
}

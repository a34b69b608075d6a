package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/profile"
	"golang.org/x/term"

	"github.com/oliverbestmann/stash"
	"github.com/oliverbestmann/stash/internal/config"
	"github.com/oliverbestmann/stash/internal/logging"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (config.Config, error) {
	flags := flag.NewFlagSet("stashdemo", flag.ContinueOnError)

	var (
		configPath  = flags.String("config", "", "Path to a YAML config file")
		logLevel    = flags.String("log-level", "", "Log level (debug, info, warn, error)")
		development = flags.Bool("dev", false, "Human readable development logging")
		profileMode = flags.String("profile", "", "Profile the run (cpu, mem)")
		fps         = flags.Uint("fps", 0, "Frame rate stored as a resource")
		interactive = flags.Bool("i", false, "Interactive inspector")
	)

	if err := flags.Parse(args); err != nil {
		return config.Config{}, err
	}

	if *fps > math.MaxUint32 {
		return config.Config{}, fmt.Errorf("fps %d exceeds %d", *fps, uint32(math.MaxUint32))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, err
	}

	// flags win over the config file and the environment
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.Log.Level = *logLevel
		case "dev":
			cfg.Log.Development = *development
		case "profile":
			cfg.Profile = config.Profile(*profileMode)
		case "fps":
			cfg.FPS = uint32(*fps)
		case "i":
			cfg.Interactive = *interactive
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func run(cfg config.Config) error {
	switch cfg.Profile {
	case config.ProfileCPU:
		defer profile.Start(profile.CPUProfile).Stop()
	case config.ProfileMem:
		defer profile.Start(profile.MemProfile).Stop()
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	world := buildDemoWorld(cfg, stash.WithLogger(logger))

	if cfg.Interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			logger.Warn("Stdout is not a terminal, falling back to a plain dump")
		} else {
			_, err := tea.NewProgram(newInspector(world), tea.WithAltScreen()).Run()
			return err
		}
	}

	dumpWorld(os.Stdout, world)
	return nil
}

func dumpWorld(out io.Writer, w *stash.World) {
	for _, ty := range w.ResourceTypes() {
		value, _ := w.Resource(ty)
		fmt.Fprintf(out, "resource %s: %s", ty, dumper.Sdump(reflect.ValueOf(value).Elem().Interface()))
	}

	for _, ty := range w.ComponentTypes() {
		count := w.ComponentLenOf(ty)
		if count == 0 {
			fmt.Fprintf(out, "component %s: empty\n", ty)
			continue
		}

		shared, _ := w.Component(ty, 0)
		fmt.Fprintf(out, "component %s[0] of %d: %s", ty, count, dumper.Sdump(shared.Value()))
	}
}

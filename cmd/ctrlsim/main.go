// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/ctrlunit/config"
	"github.com/ezrec/ctrlunit/emulator"
)

func main() {
	var configFile string
	var stimulus string
	var cycles int
	var defines bool
	var verbose bool

	flag.StringVar(&configFile, "c", "", ".star configuration file")
	flag.StringVar(&stimulus, "s", "", ".star stimulus file")
	flag.IntVar(&cycles, "n", 1000, "Maximum cycles to run")
	flag.BoolVar(&defines, "d", false, "List defines, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := config.Default()
	if len(configFile) != 0 {
		var err error
		cfg, err = config.Load(configFile, nil)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
	}

	emu := emulator.NewEmulator(cfg)
	emu.Verbose = verbose
	if verbose {
		emu.Trace.SetLevel(logrus.DebugLevel)
	}

	if defines {
		for name, value := range emu.Defines() {
			fmt.Printf("%v = %v\n", name, value)
		}
		return
	}

	if len(stimulus) == 0 {
		log.Fatalf("%v: no stimulus file (-s)", os.Args[0])
	}

	script, err := emulator.LoadScript(stimulus, nil, emu.Defines())
	if err != nil {
		log.Fatalf("%v: %v", stimulus, err)
	}

	emu.Reset()
	err = emu.Run(script, cycles)
	if err != nil {
		log.Fatalf("%v: %v", stimulus, err)
	}

	fmt.Printf("%6s: %d\n", "cycles", emu.Cycle)
	fmt.Print(emu.Control.String())
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/basicmachine/cpu"
	"github.com/ezrec/basicmachine/emulator"
)

// writeFile creates path and fills it with write.
func writeFile(path string, write func(f *os.File) error) {
	ouf, err := os.Create(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	defer ouf.Close()

	err = write(ouf)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
}

// stepper single steps the emulator, one cycle per line of input.
func stepper(emu *emulator.Emulator) (err error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("-step requires a terminal on stdin")
	}

	input := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%04o: %v\n", emu.Pc(), emu.Line())
		fmt.Print("[enter] step, r run, q quit> ")
		if !input.Scan() {
			return input.Err()
		}

		switch strings.TrimSpace(input.Text()) {
		case "q":
			return
		case "r":
			return emu.Run(context.Background())
		}

		var done bool
		done, err = emu.Tick()
		fmt.Print(emu.Cpu.String())
		if err != nil || done {
			return
		}
	}
}

func main() {
	var compile string
	var listing string
	var output string
	var load string
	var save bool
	var start int
	var limit int
	var step bool
	var verbose bool

	asm := &cpu.Assembler{}
	emu := emulator.NewEmulator()

	for label, value := range emu.Defines() {
		asm.Predefine(label, value)
	}

	flag.StringVar(&compile, "c", "", "source file to assemble")
	flag.StringVar(&listing, "l", "", "listing file to write")
	flag.StringVar(&output, "o", "", "load file to write")
	flag.StringVar(&load, "L", "", "load file to run")
	flag.BoolVar(&save, "s", false, "Assemble only, do not execute")
	flag.IntVar(&start, "pc", emulator.START_FIRST_NONZERO, "start address (default: first nonzero word)")
	flag.IntVar(&limit, "n", 0, "maximum cycles to execute (0 is unlimited)")
	flag.BoolVar(&step, "step", false, "Single step interactively")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "predefine a symbol, LABEL=VALUE", func(def string) error {
		label, value, ok := strings.Cut(def, "=")
		if !ok {
			return fmt.Errorf("%v: expected LABEL=VALUE", def)
		}
		n, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return err
		}
		asm.Predefine(label, int(n))
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	prog := cpu.NewProgram()

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm.Verbose = verbose
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(load) != 0:
		inf, err := os.Open(load)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		defer inf.Close()

		prog, err = cpu.ReadLoadFile(inf)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	default:
		log.Fatalf("%v: one of -c or -L is required", os.Args[0])
	}

	if len(listing) != 0 {
		writeFile(listing, func(ouf *os.File) error { return prog.WriteListing(ouf) })
	}

	if len(output) != 0 {
		writeFile(output, func(ouf *os.File) error { return prog.WriteLoadFile(ouf) })
	}

	if save {
		return
	}

	emu.Program = prog
	emu.Verbose = verbose
	emu.StepLimit = limit

	err := emu.Reset(start)
	if err != nil {
		log.Fatal(err)
	}

	if step {
		err = stepper(emu)
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = emu.Run(ctx)
		stop()
	}

	fmt.Print(emu.Cpu.String())

	if emu.Memory.Faults != 0 {
		log.Printf("%v: %d out-of-range memory accesses (-v to trace)", os.Args[0], emu.Memory.Faults)
	}

	if err != nil {
		log.Fatal(err)
	}
}

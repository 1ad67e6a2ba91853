// Command c8run steps a CHIP-8 program instruction by instruction without
// any frontend, for debugging interpreters and test ROMs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/rom"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/term"
)

type traceEntry struct {
	pc uint16
	in chip8.Instruction
	v  [chip8.NumRegisters]byte
	i  uint16
	sp uint8
}

func (te traceEntry) String() string {
	return fmt.Sprintf("PC=%03X OP=%04X %-18s I=%03X SP=%d V=% X",
		te.pc, te.in.Opcode, disasm.Format(te.in), te.i, te.sp, te.v[:])
}

// ring keeps the last n trace entries.
type ring struct {
	buf  []traceEntry
	idx  int
	fill int
}

func newRing(n int) *ring { return &ring{buf: make([]traceEntry, n)} }

func (r *ring) add(te traceEntry) {
	if len(r.buf) == 0 {
		return
	}
	r.buf[r.idx] = te
	r.idx = (r.idx + 1) % len(r.buf)
	if r.fill < len(r.buf) {
		r.fill++
	}
}

// entries returns the retained trace in chronological order.
func (r *ring) entries() []traceEntry {
	out := make([]traceEntry, 0, r.fill)
	start := (r.idx - r.fill + len(r.buf)) % max(len(r.buf), 1)
	for j := 0; j < r.fill; j++ {
		out = append(out, r.buf[(start+j)%len(r.buf)])
	}
	return out
}

// selfJump reports whether in is a 1NNN that targets its own address, the
// usual way test ROMs park when finished.
func selfJump(pc uint16, in chip8.Instruction) bool {
	return in.Family() == 0x1 && in.NNN == pc
}

func main() {
	romPath := flag.String("rom", "", "path to ROM (.ch8)")
	steps := flag.Int("steps", 1_000_000, "max instructions to run")
	trace := flag.Bool("trace", false, "print every instruction")
	list := flag.Bool("disasm", false, "print a disassembly listing and exit")
	quirkSet := flag.String("quirks", "vip", "quirk preset: vip, modern or legacy")
	seed := flag.Uint64("seed", 1, "random seed for CXNN")
	stopOnLoop := flag.Bool("stopOnLoop", true, "stop when the program jumps to itself")
	timerEvery := flag.Int("timerEvery", 10, "tick the 60 Hz timers every N instructions; 0 disables")
	dump := flag.Bool("dump", true, "print the display when done")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	traceOnFail := flag.Bool("traceOnFail", false, "on a fault, print a recent trace window")
	traceWindow := flag.Int("traceWindow", 200, "number of recent instructions to include in 'traceOnFail' dump")
	flag.Parse()

	if *romPath == "" && flag.NArg() > 0 {
		*romPath = flag.Arg(0)
	}
	if *romPath == "" {
		log.Fatal("-rom is required")
	}
	r, err := rom.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("read rom: %v", err)
	}

	if *list {
		if err := disasm.Write(os.Stdout, r.Data, chip8.ProgramStart); err != nil {
			log.Fatal(err)
		}
		return
	}

	q, ok := chip8.QuirksByName(*quirkSet)
	if !ok {
		log.Fatalf("unknown quirk preset %q", *quirkSet)
	}
	m := chip8.New(chip8.Config{Quirks: q, Seed: *seed})
	if err := m.Load(r.Data); err != nil {
		log.Fatalf("load: %v", err)
	}
	fmt.Printf("ROM: %s\n", r.Info())

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}
	recent := newRing(*traceWindow)
	done := func(n int, code int) {
		if *dump {
			fmt.Print(term.Render(&m.Display))
		}
		fmt.Printf("\nDone: steps=%d PC=%03X elapsed=%s\n", n, m.PC, time.Since(start).Truncate(time.Millisecond))
		os.Exit(code)
	}

	for i := 0; i < *steps; i++ {
		pc := m.PC
		in, err := m.Step()
		if err != nil {
			var f *chip8.Fault
			if errors.As(err, &f) {
				fmt.Printf("\nFault at %03X opcode %04X: %v\n", f.PC, f.Opcode, f.Err)
			} else {
				fmt.Printf("\nFault: %v\n", err)
			}
			if *traceOnFail && recent.fill > 0 {
				fmt.Printf("\n--- recent trace (last %d instructions) ---\n", recent.fill)
				for _, te := range recent.entries() {
					fmt.Println(te)
				}
				fmt.Printf("--- end trace ---\n")
			}
			done(i+1, 1)
		}
		if *trace || *traceOnFail {
			te := traceEntry{pc: pc, in: in, v: m.V, i: m.I, sp: m.SP}
			if *trace {
				fmt.Println(te)
			}
			if *traceOnFail {
				recent.add(te)
			}
		}
		if *timerEvery > 0 && (i+1)%*timerEvery == 0 {
			m.TickTimers()
		}
		if *stopOnLoop && selfJump(pc, in) {
			fmt.Printf("\nProgram parked at %03X.\n", pc)
			done(i+1, 0)
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			done(i+1, 2)
		}
	}
	done(*steps, 0)
}

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"strconv"
	"strings"

	"github.com/ezrec/basicmachine/internal"
)

// Program is an assembled program: a mapping from address to word, plus the
// source text needed to produce a listing.
type Program struct {
	Words   map[int]uint16 // Emitted words, by address.
	Lines   map[int]string // Source line of each emitted word.
	Locs    map[int]string // LOC directives, by the address they selected.
	Symbols SymbolTable    // Symbol table used to assemble the program.
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{
		Words:   map[int]uint16{},
		Lines:   map[int]string{},
		Locs:    map[int]string{},
		Symbols: SymbolTable{},
	}
}

// octal formats a value as a 6 digit octal word.
func octal(value int) string {
	return fmt.Sprintf("%06o", value&WORD_MASK)
}

// Addresses returns the emitted addresses in ascending order.
func (prog *Program) Addresses() iter.Seq[int] {
	return func(yield func(addr int) bool) {
		for _, addr := range internal.SortedUnique(maps.Keys(prog.Words)) {
			if !yield(addr) {
				return
			}
		}
	}
}

// Codes returns the emitted address and word pairs in ascending address order.
func (prog *Program) Codes() iter.Seq2[int, uint16] {
	return func(yield func(addr int, word uint16) bool) {
		for addr := range prog.Addresses() {
			if !yield(addr, prog.Words[addr]) {
				return
			}
		}
	}
}

// Source returns the source line of the word at addr.
func (prog *Program) Source(addr int) (line string, ok bool) {
	line, ok = prog.Lines[addr]
	return
}

// WriteListing writes the listing: every LOC directive, followed by
// `<address> <word> <source>` for each emitted word, in address order.
func (prog *Program) WriteListing(w io.Writer) (err error) {
	addrs := internal.SortedUnique(internal.IterSeqConcat(maps.Keys(prog.Words), maps.Keys(prog.Locs)))

	bw := bufio.NewWriter(w)
	for _, addr := range addrs {
		if loc, ok := prog.Locs[addr]; ok {
			fmt.Fprintf(bw, "%14s%s\n", "", loc)
		}
		if word, ok := prog.Words[addr]; ok {
			fmt.Fprintf(bw, "%s %s %s\n", octal(addr), octal(int(word)), prog.Lines[addr])
		}
	}

	return bw.Flush()
}

// WriteLoadFile writes `<address> <word>` for each emitted word, in address
// order. The final line has no trailing newline.
func (prog *Program) WriteLoadFile(w io.Writer) (err error) {
	var lines []string
	for addr, word := range prog.Codes() {
		lines = append(lines, octal(addr)+" "+octal(int(word)))
	}

	_, err = io.WriteString(w, strings.Join(lines, "\n"))
	return
}

// Listing returns the listing as a string.
func (prog *Program) Listing() string {
	var sb strings.Builder
	_ = prog.WriteListing(&sb)
	return sb.String()
}

// LoadFile returns the load file as a string.
func (prog *Program) LoadFile() string {
	var sb strings.Builder
	_ = prog.WriteLoadFile(&sb)
	return sb.String()
}

// ReadLoadFile parses a load file of octal `<address> <word>` lines into a
// program. Blank lines are skipped, and fields after the word are ignored.
func ReadLoadFile(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = NewProgram()

	for scanner.Scan() {
		line = scanner.Text()
		lineno++

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			err = ErrLoadSyntax
			return
		}

		addr, perr := strconv.ParseUint(fields[0], 8, 16)
		if perr != nil {
			err = errors.Join(ErrLoadSyntax, ErrParseNumber(fields[0]))
			return
		}
		word, perr := strconv.ParseUint(fields[1], 8, 16)
		if perr != nil {
			err = errors.Join(ErrLoadSyntax, ErrParseNumber(fields[1]))
			return
		}

		prog.Words[int(addr)] = uint16(word)
		prog.Lines[int(addr)] = line
	}

	line = ""
	err = scanner.Err()

	return
}

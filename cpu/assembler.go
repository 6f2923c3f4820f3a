// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// SymbolTable maps upper case labels to addresses.
type SymbolTable map[string]int

// Lookup returns the address of a label, case insensitive.
func (st SymbolTable) Lookup(label string) (addr int, ok bool) {
	addr, ok = st[strings.ToUpper(label)]
	return
}

// Layout is the result of pass 1: the symbol table, and the location
// counter selected by each LOC directive, keyed by source line number.
type Layout struct {
	Symbols SymbolTable
	Locs    map[int]int
}

// Assembler is a two pass assembler for the basic machine.
//
// Pass 1 builds the symbol table from labels and LOC directives, fixing the
// address of every word. Pass 2 resolves operands against that table and
// emits one word per instruction or DATA directive.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Symbol  SymbolTable // Symbol table of the last assembly.

	predefine map[string]int // Predefined symbols.
}

// Predefine defines a symbol that is present before pass 1 starts.
func (asm *Assembler) Predefine(label string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{}
	}
	asm.predefine[strings.ToUpper(label)] = value
}

// Parse reads source text and assembles it.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	return asm.Assemble(lines)
}

// Assemble runs both passes over the source lines.
func (asm *Assembler) Assemble(lines []string) (prog *Program, err error) {
	layout, err := asm.Pass1(lines)
	if err != nil {
		return
	}

	asm.Symbol = layout.Symbols

	return asm.Pass2(lines, layout)
}

// splitLine strips the comment and the label from a source line.
// A ':' inside a $(...) expression does not end a label.
func splitLine(raw string) (label string, text string) {
	text, _, _ = strings.Cut(raw, ";")
	text = strings.TrimSpace(text)

	colon := strings.Index(text, ":")
	if colon < 0 {
		return "", text
	}
	if expr := strings.Index(text, "$("); expr >= 0 && expr < colon {
		return "", text
	}

	return strings.ToUpper(strings.TrimSpace(text[:colon])), strings.TrimSpace(text[colon+1:])
}

// tokens splits an instruction into its mnemonic and operands.
func tokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// parseNumber parses a decimal, or 0x prefixed hexadecimal, literal.
func parseNumber(word string) (value int, ok bool) {
	var v64 int64
	var err error
	if strings.HasPrefix(word, "0x") || strings.HasPrefix(word, "0X") {
		v64, err = strconv.ParseInt(word[2:], 16, 32)
	} else {
		v64, err = strconv.ParseInt(word, 10, 32)
	}
	if err != nil {
		return
	}

	return int(v64), true
}

var exprRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// parenEval does compile-time $(...) evaluations, with the symbol table
// visible as integer variables.
func parenEval(expr string, symbols SymbolTable) (value int, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for label, addr := range symbols {
		pred[label] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// expand replaces each $(...) in text with its decimal value.
func expand(text string, symbols SymbolTable) (out string, err error) {
	out = exprRegexp.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := parenEval(str[2:len(str)-1], symbols)
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	return
}

// locOperand parses the address of a LOC directive.
func locOperand(text string, symbols SymbolTable) (loc int, err error) {
	text, err = expand(text, symbols)
	if err != nil {
		return
	}

	words := tokens(text)
	if len(words) < 2 {
		err = ErrLocMissing
		return
	}

	loc, ok := parseNumber(words[1])
	if !ok {
		err = ErrParseNumber(words[1])
		return
	}

	return
}

// Pass1 builds the symbol table, and records the address selected by each
// LOC directive. LOC expressions are evaluated only here.
func (asm *Assembler) Pass1(lines []string) (layout *Layout, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	symbols := maps.Clone(SymbolTable(asm.predefine))
	if symbols == nil {
		symbols = SymbolTable{}
	}

	layout = &Layout{Symbols: symbols, Locs: map[int]int{}}

	bind := func(label string, loc int) {
		if len(label) == 0 {
			return
		}
		if asm.Verbose {
			if old, ok := symbols[label]; ok && old != loc {
				log.Printf("%d: label %v redefined %04o => %04o", lineno, label, old, loc)
			}
		}
		symbols[label] = loc
	}

	loc := 0
	for lineno, line = range lines {
		lineno++

		label, text := splitLine(line)
		if len(label) == 0 && len(text) == 0 {
			continue
		}

		words := tokens(text)
		if len(words) == 0 {
			// Label on its own line.
			bind(label, loc)
			continue
		}

		switch strings.ToUpper(words[0]) {
		case "LOC":
			loc, err = locOperand(text, symbols)
			if err != nil {
				return
			}
			layout.Locs[lineno] = loc
			bind(label, loc)
		default:
			// DATA, and every instruction, occupy one word.
			bind(label, loc)
			loc++
		}
	}

	return
}

// registerField parses a register operand such as 2, R2 or X2.
func (asm *Assembler) registerField(word string) int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '-' {
			return r
		}
		return -1
	}, word)
	if len(digits) == 0 {
		return 0
	}

	value, err := strconv.Atoi(digits)
	if err != nil {
		if asm.Verbose {
			log.Printf("register %v: %v", word, ErrParseNumber(word))
		}
		return 0
	}

	return value
}

// resolve returns a literal value, or a symbol address. Unresolved
// symbols are 0.
func (asm *Assembler) resolve(word string, symbols SymbolTable) int {
	if value, ok := parseNumber(word); ok {
		return value
	}

	addr, ok := symbols.Lookup(word)
	if !ok && asm.Verbose {
		log.Printf("label %v missing, using 0", word)
	}

	return addr
}

// indirect returns true for the indirect flag operands 1 and I.
func indirect(word string) bool {
	return word == "1" || strings.EqualFold(word, "I")
}

// Pass2 generates code from the source lines and the layout of pass 1.
func (asm *Assembler) Pass2(lines []string, layout *Layout) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	symbols := layout.Symbols

	prog = NewProgram()
	prog.Symbols = symbols

	emit := func(loc int, word uint16) {
		if asm.Verbose {
			log.Printf("%d: %04o %06o %v", lineno, loc, word, line)
		}
		prog.Words[loc] = word
		prog.Lines[loc] = line
	}

	loc := 0
	for lineno, line = range lines {
		lineno++

		_, text := splitLine(line)
		if len(text) == 0 {
			continue
		}

		text, err = expand(text, symbols)
		if err != nil {
			return
		}

		words := tokens(text)
		if len(words) == 0 {
			continue
		}
		mnemonic := strings.ToUpper(words[0])

		switch mnemonic {
		case "LOC":
			var ok bool
			loc, ok = layout.Locs[lineno]
			if !ok {
				err = ErrLocMissing
				return
			}
			prog.Locs[loc] = line
			continue
		case "DATA":
			if len(words) < 2 {
				err = ErrOpcodeValueMissing
				return
			}
			emit(loc, uint16(asm.resolve(words[1], symbols)&WORD_MASK))
			loc++
			continue
		}

		op, ok := LookupOpcode(mnemonic)
		if !ok && asm.Verbose {
			log.Printf("%d: unknown mnemonic %v, using %v", lineno, mnemonic, OP_HLT)
		}

		inst := Instruction{Opcode: op}
		operands := words[1:]

		switch {
		case mnemonic == "HLT":
			// All fields zero.
		case op == OP_LDX && len(operands) >= 2:
			// LDX x,address[,I]
			inst.IX = asm.registerField(operands[0])
			inst.Address = asm.resolve(operands[1], symbols)
			if len(operands) > 2 {
				inst.Indirect = indirect(operands[2])
			}
		default:
			// MNEMONIC r,ix,address[,I]
			if len(operands) > 0 {
				inst.R = asm.registerField(operands[0])
			}
			if len(operands) > 1 {
				inst.IX = asm.registerField(operands[1])
			}
			if len(operands) > 2 {
				inst.Address = asm.resolve(operands[2], symbols)
			}
			if len(operands) > 3 {
				inst.Indirect = indirect(operands[3])
			}
		}

		emit(loc, inst.Encode())
		loc++
	}

	return
}

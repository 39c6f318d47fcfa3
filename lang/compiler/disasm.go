package compiler

import (
	"fmt"
	"strings"
)

// Dasm renders a Program's code array as human-readable text, one
// instruction per line, for debugging and golden-file tests. There is no
// reverse Asm: bytecode is never persisted (spec's kernel operates on a
// freshly-compiled Program each load), so nothing ever needs to read this
// format back in.
func Dasm(p *Program) string {
	var b strings.Builder
	pc := 0
	for pc < len(p.Code) {
		pc = dasmOne(&b, p, pc)
	}
	return b.String()
}

func dasmOne(b *strings.Builder, p *Program, pc int) int {
	op := Opcode(p.Code[pc])
	fmt.Fprintf(b, "%04d %-14s", pc, op)

	switch op {
	case GET_CONST, DEF_VARIABLE, GET_VARIABLE, SET_VARIABLE, IMPORT:
		idx := p.Code[pc+1]
		fmt.Fprintf(b, " %d", idx)
		if idx >= 0 && idx < len(p.Constants) {
			fmt.Fprintf(b, " ; %s", p.Constants[idx])
		}
		pc += 2
	case JUMP, JUMP_IF_FALSE:
		off := p.Code[pc+1]
		fmt.Fprintf(b, " %+d ; -> %04d", off, pc+2+off)
		pc += 2
	case CALL:
		argc, nameIdx := p.Code[pc+1], p.Code[pc+2]
		fmt.Fprintf(b, " %d %d", argc, nameIdx)
		if nameIdx >= 0 && nameIdx < len(p.Constants) {
			fmt.Fprintf(b, " ; %s", p.Constants[nameIdx])
		}
		pc += 3
	default:
		pc++
	}
	b.WriteByte('\n')
	return pc
}

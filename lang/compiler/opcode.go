// Package compiler turns a pebble token stream into a flat bytecode array
// plus an interned constant pool (component E). The compiler never touches
// an Environment (lang/env) at all — only the VM owns the runtime scope
// chain, per spec §2's data-flow note that B is never shared with E.
package compiler

import "fmt"

// Opcode is one instruction of the bytecode array (component D). The
// closed set and fixed operand arity below are exactly spec §4.5's table.
type Opcode int

//nolint:revive
const (
	GET_CONST Opcode = iota
	DEF_VARIABLE
	GET_VARIABLE
	SET_VARIABLE
	TRUE
	FALSE
	UNDEFINED
	POP
	EQUAL
	NOT_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	ADD
	SUB
	MUL
	DIV
	FLOOR_DIV
	MOD
	AND
	OR
	NEGATE
	NOT
	JUMP
	JUMP_IF_FALSE
	DUP
	CALL
	RETURN
	DOT
	IS
	IMPORT

	numOpcodes
)

var opcodeNames = [numOpcodes]string{
	GET_CONST:     "get_const",
	DEF_VARIABLE:  "def_variable",
	GET_VARIABLE:  "get_variable",
	SET_VARIABLE:  "set_variable",
	TRUE:          "true",
	FALSE:         "false",
	UNDEFINED:     "undefined",
	POP:           "pop",
	EQUAL:         "equal",
	NOT_EQUAL:     "not_equal",
	GREATER:       "greater",
	GREATER_EQUAL: "greater_equal",
	LESS:          "less",
	LESS_EQUAL:    "less_equal",
	ADD:           "add",
	SUB:           "sub",
	MUL:           "mul",
	DIV:           "div",
	FLOOR_DIV:     "floor_div",
	MOD:           "mod",
	AND:           "and",
	OR:            "or",
	NEGATE:        "negate",
	NOT:           "not",
	JUMP:          "jump",
	JUMP_IF_FALSE: "jump_if_false",
	DUP:           "dup",
	CALL:          "call",
	RETURN:        "return",
	DOT:           "dot",
	IS:            "is",
	IMPORT:        "import",
}

func (op Opcode) String() string {
	if op >= 0 && int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal opcode (%d)", int(op))
}

// Arity returns the number of operand ints that follow op in the code
// array. CALL is the only two-operand instruction (argcount, name index).
func (op Opcode) Arity() int {
	switch op {
	case CALL:
		return 2
	case GET_CONST, DEF_VARIABLE, GET_VARIABLE, SET_VARIABLE,
		JUMP, JUMP_IF_FALSE, IMPORT:
		return 1
	default:
		return 0
	}
}

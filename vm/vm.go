// Package vm implements the fetch-decode-execute loop spec.md §4.5
// describes: a fixed-size value stack, a globals table, and a shared
// string interner driving runtime type checks and concatenation.
package vm

import (
	"fmt"

	"ember/compiler"
	"ember/interner"
	"ember/table"
	"ember/value"
)

// stackMax is the VM's fixed value-stack capacity, per spec.md §4.5.
const stackMax = 256

// VM executes one Chunk at a time. Globals persist across Run calls
// on the same VM so a REPL session can build up state line by line;
// the stack and instruction pointer are reset at the start of each
// Run.
type VM struct {
	chunk *compiler.Chunk
	ip    int

	stack [stackMax]value.Value
	sp    int

	globals *table.Table
	strings *interner.Strings
}

// New creates a VM sharing strings with whatever compiled the chunks
// it will run — the globals table and the intern table both key on
// *value.Obj by pointer identity, so compiler and VM must agree on
// one interner, per spec.md §5.
func New(strings *interner.Strings) *VM {
	return &VM{globals: table.New(), strings: strings}
}

// Run executes chunk to completion, returning a RuntimeError (or nil
// on success). A compile error never reaches here — the caller is
// expected to have already discarded the chunk in that case.
func (vm *VM) Run(chunk *compiler.Chunk) error {
	vm.chunk = chunk
	vm.ip = 0
	vm.sp = 0

	for {
		op := compiler.Opcode(vm.chunk.Code[vm.ip])
		vm.ip++

		switch op {
		case compiler.OpConstant:
			vm.push(vm.readConstant())

		case compiler.OpNil:
			vm.push(value.Nil())
		case compiler.OpTrue:
			vm.push(value.Bool(true))
		case compiler.OpFalse:
			vm.push(value.Bool(false))

		case compiler.OpPop:
			vm.pop()

		case compiler.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))

		case compiler.OpGreater, compiler.OpLess:
			if err := vm.comparison(op); err != nil {
				return err
			}

		case compiler.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case compiler.OpSubtract, compiler.OpMultiply, compiler.OpDivide:
			if err := vm.arithmetic(op); err != nil {
				return err
			}

		case compiler.OpNot:
			top := vm.pop()
			if !top.IsBool() {
				return vm.runtimeError("operand must be a boolean.")
			}
			vm.push(value.Bool(!top.AsBool()))

		case compiler.OpNegate:
			top := vm.pop()
			if !top.IsNumber() {
				return vm.runtimeError("operand must be a number.")
			}
			vm.push(value.Number(-top.AsNumber()))

		case compiler.OpPrint:
			fmt.Println(vm.pop().String())

		case compiler.OpDefineGlobal:
			name := vm.readConstant().AsObject()
			vm.globals.Set(name, vm.pop())

		case compiler.OpGetGlobal:
			name := vm.readConstant().AsObject()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars())
			}
			vm.push(v)

		case compiler.OpSetGlobal:
			name := vm.readConstant().AsObject()
			// table.Set reports whether the key was new; reusing that
			// to detect "absent" and undo the insert on failure is the
			// same trick the original table implementation relies on.
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.Chars())
			}

		case compiler.OpReturn:
			return nil

		default:
			return vm.runtimeError("unknown opcode %d", op)
		}
	}
}

func (vm *VM) readConstant() value.Value {
	idx := vm.chunk.Code[vm.ip]
	vm.ip++
	return vm.chunk.Constants[idx]
}

func (vm *VM) push(v value.Value) {
	if vm.sp >= stackMax {
		panic("vm: stack overflow")
	}
	vm.stack[vm.sp] = v
	vm.sp++
}

func (vm *VM) pop() value.Value {
	if vm.sp == 0 {
		panic("vm: stack underflow")
	}
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.sp-1-distance]
}

func (vm *VM) comparison(op compiler.Opcode) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	switch op {
	case compiler.OpGreater:
		vm.push(value.Bool(a > b))
	case compiler.OpLess:
		vm.push(value.Bool(a < b))
	}
	return nil
}

func (vm *VM) arithmetic(op compiler.Opcode) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	switch op {
	case compiler.OpSubtract:
		vm.push(value.Number(a - b))
	case compiler.OpMultiply:
		vm.push(value.Number(a * b))
	case compiler.OpDivide:
		vm.push(value.Number(a / b))
	}
	return nil
}

// add implements ADD's dual numeric-or-string contract: string
// concatenation goes through the shared interner so the result
// participates in the same interning invariant as any other string,
// per spec.md §4.5.
func (vm *VM) add() error {
	if vm.peek(0).IsString() && vm.peek(1).IsString() {
		b := vm.pop().AsString()
		a := vm.pop().AsString()
		obj := vm.strings.Intern(a + b)
		vm.push(value.Object(obj))
		return nil
	}
	if vm.peek(0).IsNumber() && vm.peek(1).IsNumber() {
		b := vm.pop().AsNumber()
		a := vm.pop().AsNumber()
		vm.push(value.Number(a + b))
		return nil
	}
	return vm.runtimeError("Operands must be two numbers or two strings.")
}

// runtimeError builds the RuntimeError spec.md §4.5/§7 describes: the
// message plus the source line the faulting instruction came from,
// looked up at ip-1 since ip has already advanced past the opcode
// byte that failed. The stack is reset so a REPL can keep going.
func (vm *VM) runtimeError(format string, args ...any) error {
	line := vm.chunk.Lines.Line(vm.ip - 1)
	vm.sp = 0
	return RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}

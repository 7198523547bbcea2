package emit

import (
	"fmt"
	"strings"

	"scriptfe/sem"
)

// Instruction is a single recorded emitter call, disassembly-style: a
// mnemonic plus its already-stringified operands.
type Instruction struct {
	Op   string
	Args []string
}

func (i Instruction) String() string {
	if len(i.Args) == 0 {
		return i.Op
	}
	return fmt.Sprintf("%s %s", i.Op, strings.Join(i.Args, ", "))
}

// Recorder is the reference Emitter implementation: it appends every call
// to an in-memory instruction log instead of driving a real assembler,
// so tests can assert on emission order and the dump-asm debug driver has
// something to print.
type Recorder struct {
	Instrs    []Instruction
	nextLabel LabelID

	// heapStack mirrors the assembler's nested heap-list scopes: each
	// PushHeapList opens a frame, each MarkHeap(MemuseStatic, n) adds to
	// the innermost open frame, and PopStaticHeapList/PopHeapList close
	// it -- the former handing back what it accumulated, the latter
	// discarding it (used when the scope's cleanup already happened by
	// some other means, e.g. a scrapped heap list).
	heapStack []int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) emit(op string, args ...string) {
	r.Instrs = append(r.Instrs, Instruction{Op: op, Args: args})
}

// Disassembly renders every recorded instruction, one per line, resolving
// label IDs to "L<n>" the way a real disassembler would.
func (r *Recorder) Disassembly() string {
	var sb strings.Builder
	for _, instr := range r.Instrs {
		sb.WriteString(instr.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func symName(sym *sem.Symbol) string {
	if sym == nil {
		return "<nil>"
	}
	return sym.Name
}

func (r *Recorder) LdConst(imm int64, reg Reg) { r.emit("ldconst", fmt.Sprint(imm), reg.String()) }
func (r *Recorder) Rvalue(val *sem.Value)      { r.emit("rvalue", describeValue(val)) }
func (r *Recorder) Store(val *sem.Value)       { r.emit("store", describeValue(val)) }
func (r *Recorder) Address(sym *sem.Symbol, reg Reg) {
	r.emit("address", symName(sym), reg.String())
}

func (r *Recorder) PushReg(reg Reg) { r.emit("pushreg", reg.String()) }
func (r *Recorder) PopReg(reg Reg)  { r.emit("popreg", reg.String()) }
func (r *Recorder) MoveAlt()        { r.emit("move_alt") }
func (r *Recorder) MoveTo1()        { r.emit("moveto1") }
func (r *Recorder) Swap1()          { r.emit("swap1") }

func (r *Recorder) Invert()            { r.emit("invert") }
func (r *Recorder) Lneg()              { r.emit("lneg") }
func (r *Recorder) Neg()               { r.emit("neg") }
func (r *Recorder) IncPri()            { r.emit("inc_pri") }
func (r *Recorder) DecPri()            { r.emit("dec_pri") }
func (r *Recorder) Inc(val *sem.Value) { r.emit("inc", describeValue(val)) }
func (r *Recorder) Dec(val *sem.Value) { r.emit("dec", describeValue(val)) }
func (r *Recorder) ObAdd()             { r.emit("ob_add") }

var binOpNames = map[BinOp]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpShl: "shl", OpShr: "shr", OpUShr: "ushr",
	OpEq: "eq", OpNe: "neq", OpLt: "less", OpLe: "leq", OpGt: "grtr", OpGe: "geq",
}

func (r *Recorder) BinaryOp(op BinOp) {
	name, ok := binOpNames[op]
	if !ok {
		name = "?binop?"
	}
	r.emit(name)
}

func (r *Recorder) RelopPrefix() { r.emit("relop_prefix") }
func (r *Recorder) RelopSuffix() { r.emit("relop_suffix") }

func (r *Recorder) GetLabel() LabelID {
	r.nextLabel++
	return r.nextLabel
}
func (r *Recorder) SetLabel(id LabelID)  { r.emit("setlabel", fmt.Sprintf("L%d", id)) }
func (r *Recorder) JumpLabel(id LabelID) { r.emit("jumplabel", fmt.Sprintf("L%d", id)) }
func (r *Recorder) JmpEq0(id LabelID)    { r.emit("jmp_eq0", fmt.Sprintf("L%d", id)) }
func (r *Recorder) JmpNe0(id LabelID)    { r.emit("jmp_ne0", fmt.Sprintf("L%d", id)) }

func (r *Recorder) Cell2Addr()         { r.emit("cell2addr") }
func (r *Recorder) Char2Addr()         { r.emit("char2addr") }
func (r *Recorder) FfBounds(max int64) { r.emit("ffbounds", fmt.Sprint(max)) }
func (r *Recorder) MemCopy(bytes int)  { r.emit("memcopy", fmt.Sprint(bytes)) }

func (r *Recorder) PushHeapList() {
	r.heapStack = append(r.heapStack, 0)
	r.emit("pushheaplist")
}

// PopStaticHeapList closes the innermost heap-list scope and returns the
// total cell count marked MemuseStatic inside it since the matching
// PushHeapList, the way pop_static_heaplist() does in the original.
func (r *Recorder) PopStaticHeapList() int {
	total := r.popHeapFrame()
	r.emit("pop_static_heaplist")
	return total
}

func (r *Recorder) PopHeapList(scrap bool) {
	r.popHeapFrame()
	r.emit("popheaplist", fmt.Sprint(scrap))
}

func (r *Recorder) popHeapFrame() int {
	if len(r.heapStack) == 0 {
		return 0
	}
	top := len(r.heapStack) - 1
	total := r.heapStack[top]
	r.heapStack = r.heapStack[:top]
	return total
}

func (r *Recorder) SetHeapSave(bytes int) { r.emit("setheap_save", fmt.Sprint(bytes)) }
func (r *Recorder) SetHeapPri()           { r.emit("setheap_pri") }
func (r *Recorder) SetHeap(val int64)     { r.emit("setheap", fmt.Sprint(val)) }
func (r *Recorder) ModHeap(bytes int)     { r.emit("modheap", fmt.Sprint(bytes)) }
func (r *Recorder) MarkHeap(kind HeapUse, size int) {
	name := "MEMUSE_STATIC"
	if kind == MemuseDynamic {
		name = "MEMUSE_DYNAMIC"
	} else if len(r.heapStack) > 0 {
		r.heapStack[len(r.heapStack)-1] += size
	}
	r.emit("markheap", name, fmt.Sprint(size))
}

func (r *Recorder) FfCall(sym *sem.Symbol, argc int) {
	r.emit("ffcall", symName(sym), fmt.Sprint(argc))
}
func (r *Recorder) LoadGlbFn(sym *sem.Symbol) { r.emit("load_glbfn", symName(sym)) }
func (r *Recorder) MarkUsage(sym *sem.Symbol, flag bool) {
	r.emit("markusage", symName(sym), fmt.Sprint(flag))
}

func (r *Recorder) InvokeGetter(acc sem.AccessorPair) {
	r.emit("invoke_getter", symName(acc.Get))
}
func (r *Recorder) InvokeSetter(acc sem.AccessorPair, popValueFromStack bool) {
	r.emit("invoke_setter", symName(acc.Set), fmt.Sprint(popValueFromStack))
}

func (r *Recorder) SetDefArray(data []int64, arraySize int, isConst bool) {
	r.emit("setdefarray", fmt.Sprint(data), fmt.Sprint(arraySize), fmt.Sprint(isConst))
}

func (r *Recorder) MarkExpr() { r.emit("markexpr", "sPARM") }

func describeValue(val *sem.Value) string {
	if val == nil {
		return "<nil>"
	}
	if val.Sym != nil {
		return val.Sym.Name
	}
	return fmt.Sprintf("constval=%d", val.Constval)
}

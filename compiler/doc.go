/*

Process of method compilation

Bytecode Method in SSA form (mir) ->
	forward pass (codegen) ->
Generic IR (gir) ->
	external optimizer ->
Generic IR (gir) ->
	reverse pass (codegen) ->
Low-level Instruction List (lir) ->
	register allocation, assembly ->
Machine Code

The external optimizer, the register allocator and the assembler are not part
of this repository.  The bitcode interchange format (gir json) and the lir
listing are their respective contracts.

*/
package compiler

/*
Package rtlsim provides a cycle-based, zero-delay simulator for register
transfer level designs written in Go.

A design is a tree of modules. Each module declares ports and wires, connects
them to the ports of its submodules, and registers its behavior as reactions:

	- combinational reactions run during settlement, every time one of the
	  ports in their sensitivity list is written;
	- clock-edge reactions run once per cycle, after settlement, and compute
	  the next value of registers.

NewCircuit elaborates the tree: every set of transitively connected ports is
resolved into a single storage cell, and reactions are indexed by the cells
they are sensitive to. The resulting Circuit is then advanced one clock cycle
at a time with Step, which settles combinational logic, runs clock-edge
reactions and commits all registers at once. A reaction never observes a
partially updated set of registers.

Commits do not schedule combinational reactions unless the circuit is built
with WithCommitNotify(true).

Modules are usually assembled from smaller ones with Mount and a connection
string like "a=x, b=y". Leaf modules can also be described by a struct with
tagged port fields, see MakeModule.

Package hwlib provides a library of parts built on top of rtlsim. Package
trace records signal changes to VCD files or SQLite databases.
*/
package rtlsim

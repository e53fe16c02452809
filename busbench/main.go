// Command busbench runs a memory-mapped bus master against an emulated
// Wishbone memory and reports a verdict through its exit code.
package main

import "github.com/sarchlab/busbench/busbench/cmd"

func main() {
	cmd.Execute()
}

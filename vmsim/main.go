// Command vmsim runs the demand-paged MMU simulator.
package main

import "github.com/sarchlab/vmsim/vmsim/cmd"

func main() {
	cmd.Execute()
}

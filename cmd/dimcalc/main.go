// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Command dimcalc is an RPN calculator over values with units.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := execute(newRootCmd(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v, exiting\n", err)
		os.Exit(1)
	}
}

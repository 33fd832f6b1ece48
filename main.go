// Public domain.

package main

import "github.com/soniakeys/kep/internal/kepprog"

func main() {
	kepprog.Main()
}

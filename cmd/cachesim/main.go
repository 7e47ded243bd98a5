// Command cachesim replays memory traces through a configurable
// set-associative cache model and analyzes their locality.
package main

import "github.com/tebeka/atexit"

func main() {
	Execute()
	atexit.Exit(0)
}

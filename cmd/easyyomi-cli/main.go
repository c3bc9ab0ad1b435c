// Command easyyomi-cli browses an Easyyomi server from the terminal through
// the same source instances the server registers.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultOpenApp).Execute(); err != nil {
		os.Exit(1)
	}
}

// This program mines blocks locally and talks to a running ledger node.
package main

import "github.com/ardanlabs/powledger/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}

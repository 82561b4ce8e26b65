// Command backoffice is a terminal front end to the store back office.
//
//	backoffice login +919800000001
//	backoffice verify +919800000001 1234
//	backoffice orders --status pending
//	backoffice transition 42 accepted --comment "called customer"
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newCLI().command().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

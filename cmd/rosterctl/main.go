// Command rosterctl solves and validates weekly rosters from JSON or CSV files.
package main

import (
	"os"
)

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

package main

import (
	cmd "github.com/coverage-tools/covreport/cmd/covreport"
)

func main() {
	cmd.Execute()
}

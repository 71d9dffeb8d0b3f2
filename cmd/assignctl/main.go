package main

import (
	"fmt"
	"os"

	"github.com/m04kA/SMC-AssignmentService/cmd/assignctl/commands"
)

func main() {
	app := commands.NewAppContext(os.Stdout, os.Stderr)

	if err := commands.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

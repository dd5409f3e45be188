package main

import (
	"github.com/FranziskaReden/bacillus-project/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}

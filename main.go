package main

import (
	"github.com/warm3snow/shellm/cmd"
)

func main() {
	cmd.Execute()
}

package main

import (
	"github.com/mlcup/dvcboot/cmd/dvcboot/cmd"
)

func main() {
	cmd.Execute()
}

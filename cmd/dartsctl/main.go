package main

import (
	"github.com/WillowTech1996/DartsCounter/internal/cli"
)

func main() {
	cli.Execute()
}

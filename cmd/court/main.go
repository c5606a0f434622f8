package main

import (
	"court/internal/cli"
)

func main() {
	cli.Execute()
}

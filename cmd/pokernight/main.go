package main

import (
	"github.com/mattjh/pokernight-go/internal/cli"
)

func main() {
	cli.Execute()
}

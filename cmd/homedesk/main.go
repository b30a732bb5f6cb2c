package main

import (
	"github.com/aylak/homedesk/internal/cli"
)

func main() {
	cli.Execute()
}

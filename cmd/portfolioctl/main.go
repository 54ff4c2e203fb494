package main

import "github.com/Mester2001/portfolio/internal/cli"

func main() {
	cli.Execute()
}

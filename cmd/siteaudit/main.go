package main

import "github.com/Bahjat/site-audit/internal/cli"

func main() {
	cli.Execute()
}

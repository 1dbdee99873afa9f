package main

import "github.com/s22625/lazyq/internal/cli"

func main() {
	cli.Execute()
}

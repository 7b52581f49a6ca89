package main

import "github.com/mvp-joe/xef-extract/internal/cli"

func main() {
	cli.Execute()
}

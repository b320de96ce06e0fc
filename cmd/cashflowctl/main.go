package main

import "github.com/SscSPs/cashflow_backend/internal/cli"

func main() {
	cli.Execute()
}

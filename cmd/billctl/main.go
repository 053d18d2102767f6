package main

import "github.com/smartbills/billctl/internal/cli"

func main() {
	cli.Execute()
}

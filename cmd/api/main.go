package main

import "github.com/Abhishekkjainn/smartslot-api/internal/cli"

func main() {
	cli.Execute()
}

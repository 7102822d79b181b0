package main

import "easywealth/internal/cli"

func main() {
	cli.Execute()
}

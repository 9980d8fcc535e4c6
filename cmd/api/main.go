package main

import "hospital-admin/internal/cli"

func main() {
	cli.Execute()
}

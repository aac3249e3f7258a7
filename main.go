package main

import "github.com/slalom/capabilities-management/cmd"

func main() {
	cmd.Execute()
}

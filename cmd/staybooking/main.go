package main

import "staybooking/cmd/staybooking/commands"

func main() {
	commands.Execute()
}

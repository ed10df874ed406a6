package main

import "github.com/joshfalk/chippy8/cmd"

func main() {
	cmd.Execute()
}

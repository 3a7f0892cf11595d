package main

import "github.com/timvw/cpick/cmd"

func main() {
	cmd.Execute()
}

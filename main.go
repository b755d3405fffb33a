package main

import "github.com/alexiusacademia/gobearing/cmd"

func main() {
	cmd.Execute()
}

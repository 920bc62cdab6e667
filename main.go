package main

import "github.com/carrybid/carrybid/cmd"

func main() {
	cmd.Execute()
}

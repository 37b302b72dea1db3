package main

import "github.com/hazyview/pishock-go/cmd"

func main() {
	cmd.Execute()
}

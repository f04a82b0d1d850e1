package main

import "github.com/inovacc/trendr/cmd"

func main() {
	cmd.Execute()
}

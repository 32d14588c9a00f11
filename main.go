package main

import "github.com/YashJagani/citypop/cmd"

func main() {
	cmd.Execute()
}

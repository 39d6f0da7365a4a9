package main

import "studentdb/cmd"

func main() {
	cmd.Execute()
}

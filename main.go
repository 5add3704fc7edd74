package main

import "github.com/jobstack-io/apiserver/cmd"

func main() {
	cmd.Execute()
}

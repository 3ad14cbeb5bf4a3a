package main

import "github.com/blacktop/go-tileable/cmd/tileable/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/keith-kurak/i-didnt-park/cmd"

func main() {
	cmd.Execute()
}

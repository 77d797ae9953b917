package main

import "github.com/Tiliavir/wsjtx-adif/cmd"

func main() {
	cmd.Execute()
}

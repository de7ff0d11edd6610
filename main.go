package main

import "github.com/frahmantamala/hrtool/cmd"

func main() {
	cmd.Execute()
}

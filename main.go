package main

import "prompt-editor/cmd"

func main() {
	cmd.Execute(staticFiles)
}

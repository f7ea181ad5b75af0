package main

import "nature-audio-extractor/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"os"

	"github.com/OnitiFR/esxictl/cmd/esxictl/client"
	"github.com/OnitiFR/esxictl/cmd/esxictl/topics"
)

func main() {

	client.InitExitMessage()

	err := topics.Execute()

	msg := client.GetExitMessage()
	msg.Display(os.Stderr)

	if err != nil {
		os.Exit(1)
	}
}

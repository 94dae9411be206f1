package main

import (
	"openwork-summarizer/cmd/openwork-cli/commands"
	"openwork-summarizer/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}

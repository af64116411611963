package main

import "github.com/trialgate/trialgate/internal/gatecli"

func main() {
	gatecli.Main()
}

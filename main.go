package main

import "github.com/storelab/review-gateway/cmd"

func main() {
	cmd.Execute()
}

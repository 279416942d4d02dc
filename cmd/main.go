package main

import (
	"context"
	"os"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Stderr.WriteString("materiality: " + err.Error() + "\n")
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/soyeahso/kaiwa/internal/cli"
	"github.com/soyeahso/kaiwa/internal/practice"
)

func main() {
	err := cli.ExecutePractice()
	switch {
	case err == nil:
	case errors.Is(err, practice.ErrInterrupted):
		fmt.Println("\nアプリを終了します。See you!")
		os.Exit(130)
	default:
		fmt.Fprintln(os.Stderr, "kaiwa:", err)
		os.Exit(1)
	}
}

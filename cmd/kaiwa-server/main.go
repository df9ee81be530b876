package main

import (
	"fmt"
	"os"

	"github.com/soyeahso/kaiwa/internal/cli"
	"github.com/tillberg/autorestart"
)

func main() {
	if os.Getenv("KAIWA_AUTORESTART") == "1" {
		go autorestart.RestartOnChange()
	}

	if err := cli.ExecuteServer(); err != nil {
		fmt.Fprintln(os.Stderr, "kaiwa-server:", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/nutricare/internal/ctl"
	"github.com/dmitrijs2005/nutricare/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	if err := ctl.NewRootCommand(cfg, ctl.OpenPostgres).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/po1sontre/nightreign-launcher/internal/cli"
	"github.com/po1sontre/nightreign-launcher/internal/selfupdate"
)

func main() {
	selfupdate.CleanupOld()
	os.Exit(cli.Execute())
}

package main

import (
	"os"

	"github.com/typo3-migrate/mask2cb/internal/pkg/env"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem/aferofs"
	"github.com/typo3-migrate/mask2cb/internal/pkg/service/cli/cmd"
)

func main() {
	// Run command
	root := cmd.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, env.FromOs(), aferofs.NewLocalFs)
	os.Exit(root.Execute())
}

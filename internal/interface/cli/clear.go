package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aviniti/blueprint/internal/infrastructure/persistence/file"
)

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the saved wizard session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := file.NewSessionStore(afero.NewOsFs(), globalConfig.Home)
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Session cleared.")
			return nil
		},
	}
}

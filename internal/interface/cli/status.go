package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aviniti/blueprint/internal/infrastructure/persistence/file"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved wizard session, if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := file.NewSessionStore(afero.NewOsFs(), globalConfig.Home)
			sess, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Println("No saved session.")
				return nil
			}
			fmt.Printf("Session %s\n", sess.SessionID)
			fmt.Printf("  Step:         %d of 4 (%s)\n", sess.Step, sess.Step)
			fmt.Printf("  Last updated: %s\n", sess.LastUpdated.Format("2006-01-02 15:04:05 MST"))
			if sess.PersonalDetails.FullName != "" {
				fmt.Printf("  Client:       %s\n", sess.PersonalDetails.FullName)
			}
			if sess.Catalogue != nil {
				fmt.Printf("  Features:     %d selected of %d\n", len(sess.Catalogue.Selected()), len(sess.Catalogue.Features))
			}
			if sess.FallbackCatalogue {
				fmt.Println("  Note:         feature catalogue came from the offline fallback")
			}
			return nil
		},
	}
}

package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/sdlgen/pkg/action/snapshot"
)

func init() {
	var snapshotCmd = NewSnapshotCommand()
	rootCmd.AddCommand(snapshotCmd)
}

func NewSnapshotCommand() *cobra.Command {
	var (
		manifestPath string
		name         string
		ver          string
	)

	// snapshotCmd represents the sdlgen snapshot command
	var snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "snapshot transpiled schemas",
		Long:  "Transpile schemas and record the output as a versioned snapshot in the manifest",
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c, args)
			if err != nil {
				return err
			}
			options.Logger = slog.Default()

			s, err := snapshot.Generate(c.Context(), options, manifestPath, name, ver)
			if err != nil {
				return err
			}
			slog.Default().With("id", s.ID, "version", s.Version, "files", len(s.Files)).Info("recorded snapshot")
			return nil
		},
	}
	addOptionFlags(snapshotCmd)
	snapshotCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "sdlgen.manifest.yaml", "snapshot manifest")
	snapshotCmd.Flags().StringVarP(&name, "name", "n", "schema", "snapshot name")
	snapshotCmd.Flags().StringVarP(&ver, "version", "v", "", "snapshot version")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			for _, s := range m.Snapshots {
				marker := " "
				if s.Version == m.CurrentVersion {
					marker = "*"
				}
				c.Printf("%s %s\t%s\t%s\t%d file(s)\n", marker, s.Version, s.Name, s.ID, len(s.Files))
			}
			return nil
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot with the previous one",
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			if diff == "" {
				c.Println("no changes")
				return nil
			}
			c.Print(diff)
			return nil
		},
	}

	snapshotCmd.AddCommand(listCmd, diffCmd)
	return snapshotCmd
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every cataloged package and its applicable versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, drv, err := newCatalog(cmd, opts)
			if err != nil {
				return err
			}
			return cat.List(cmd.OutOrStdout(), drv)
		},
	}
}

func newCountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the maximum valid configuration index for the requested packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, drv, err := newCatalog(cmd, opts)
			if err != nil {
				return err
			}
			total, err := cat.TotalCombinations(opts.useKeys, drv)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), total-1)
			return err
		},
	}
}

func newInstallCmd(opts *options) *cobra.Command {
	var allVersions bool
	cmd := &cobra.Command{
		Use:   "install [index]",
		Short: "Print the pip install arguments for the Nth configuration",
		Long: `Print the pip install arguments for the Nth configuration of the
packages selected with --use. The same index is applied to every package
and clamped to each package's own version count. With --all, every version
of every selected package is printed side by side instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, drv, err := newCatalog(cmd, opts)
			if err != nil {
				return err
			}
			var out string
			if allVersions {
				out, err = cat.AllInstallStrings(opts.useKeys, drv)
			} else {
				if len(args) != 1 {
					return fmt.Errorf("install needs a configuration index or --all")
				}
				idx, convErr := strconv.Atoi(args[0])
				if convErr != nil || idx < 0 {
					return fmt.Errorf("invalid configuration index %q", args[0])
				}
				out, err = cat.InstallStrings(idx, opts.useKeys, drv)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVarP(&allVersions, "all", "a", false, "print every version of every selected package")
	return cmd
}

func newRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Print the package names to uninstall before switching configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, drv, err := newCatalog(cmd, opts)
			if err != nil {
				return err
			}
			out, err := cat.RemoveString(opts.useKeys, drv)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

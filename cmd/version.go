package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/invoiceflow/site/share"
	"github.com/spf13/cobra"
)

var printAllVersion bool
var versionTemplate = `Name:	          %s
Version:	  %s
Go version:	  %s
Git commit:	  %s
Built:	          %s
OS/Arch:	  %s/%s
`
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Long:  "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		if printAllVersion {
			printVersion(cmd.OutOrStdout())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), share.VERSION)
	},
}

func init() {
	versionCmd.PersistentFlags().BoolVarP(&printAllVersion, "all", "", false, "Print all version information")
}

// printVersion PRVERSION is "<commit>-<build time>", replaced at build time
func printVersion(w io.Writer) {
	commit, built, found := strings.Cut(share.PRVERSION, "-")
	if !found {
		built = "unknown"
	}
	fmt.Fprintf(w, versionTemplate,
		share.BUILDNAME,
		share.VERSION,
		runtime.Version(),
		commit, built,
		runtime.GOOS,
		runtime.GOARCH)
}

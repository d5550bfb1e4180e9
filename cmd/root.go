package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/invoiceflow/site/config"
	"github.com/invoiceflow/site/share"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/exception"
)

var rootPath string
var envFile string

var rootCmd = &cobra.Command{
	Use:   share.BUILDNAME,
	Short: share.Site.Name + " site and invoice tools",
	Long:  share.Site.Name + " marketing site, invoice generator and UK tax calculator",
	Args:  cobra.MinimumNArgs(1),
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stderr, "One or more arguments are not correct", args)
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(
		versionCmd,
		startCmd,
		exportCmd,
		invoiceCmd,
	)
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Working directory")
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", "", "Environment file")
}

// Execute run the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Boot load the configuration from the env file
func Boot() {
	root := config.Conf.Root
	if rootPath != "" {
		r, err := filepath.Abs(rootPath)
		if err != nil {
			exception.New("Root error %s", 500, err.Error()).Throw()
		}
		root = r
		os.Setenv("SITE_ROOT", root)
	}

	if envFile != "" {
		config.Conf = config.LoadFrom(envFile)
	} else {
		config.Conf = config.LoadFrom(filepath.Join(root, ".env"))
	}

	if err := config.Conf.Check(); err != nil {
		exception.New("Config error %s", 500, err.Error()).Throw()
	}

	if config.Conf.Mode == "production" {
		config.Production()
	} else if config.Conf.Mode == "development" {
		config.Development()
	}
}

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/invoiceflow/site/config"
	"github.com/invoiceflow/site/ogimage"
	"github.com/invoiceflow/site/pages"
	"github.com/invoiceflow/site/rss"
	"github.com/invoiceflow/site/seo"
	"github.com/invoiceflow/site/share"
	"github.com/invoiceflow/site/sitemap"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/exception"
)

var exportDir string
var exportBaseURL string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the sitemap, robots.txt, feeds and Open Graph images to a directory",
	Long:  "Write the sitemap, robots.txt, feeds and Open Graph images to a directory",
	Run: func(cmd *cobra.Command, args []string) {
		defer func() {
			err := exception.Catch(recover())
			if err != nil {
				fmt.Println(color.RedString("Fatal: %s", err.Error()))
				os.Exit(1)
			}
		}()

		Boot()
		dir := exportDir
		if dir == "" {
			dir = config.Conf.ExportDir
		}
		baseURL := exportBaseURL
		if baseURL == "" {
			baseURL = config.Conf.BaseURL
		}

		files, err := Export(dir, baseURL)
		for _, file := range files {
			fmt.Println(color.GreenString("  %s", file))
		}
		if err != nil {
			fmt.Println(color.RedString("Fatal: %s", err.Error()))
			os.Exit(1)
		}
		fmt.Println(color.GreenString("✨DONE✨"), color.WhiteString("%d files in %s", len(files), dir))
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Output directory")
	exportCmd.Flags().StringVarP(&exportBaseURL, "base-url", "b", "", "Canonical origin of the URLs")
}

// Export write the static documents of the site into dir, returns the
// written files relative to dir. Image failures are collected and do not
// stop the export.
func Export(dir string, baseURL string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("export directory is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	files := []string{}
	write := func(name string, data []byte) error {
		file := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
			return err
		}
		if err := os.WriteFile(file, data, 0644); err != nil {
			return err
		}
		files = append(files, name)
		return nil
	}

	xml, err := sitemap.Build(pages.URLs(baseURL))
	if err != nil {
		return files, err
	}
	if err := sitemap.Validate(xml); err != nil {
		return files, fmt.Errorf("sitemap.xml: %w", err)
	}
	if err := write("sitemap.xml", []byte(xml)); err != nil {
		return files, err
	}

	robots := pages.Robots(baseURL)
	if loc := seo.Absolute(baseURL, "/sitemap.xml"); !contains(sitemap.ParseRobots(robots), loc) {
		return files, fmt.Errorf("robots.txt does not list %s", loc)
	}
	if err := write("robots.txt", []byte(robots)); err != nil {
		return files, err
	}

	for _, format := range []string{"rss", "atom"} {
		name := "blog/" + format + ".xml"
		data, err := rss.Build(pages.Feed(baseURL, "/"+name), format)
		if err != nil {
			return files, err
		}
		if err := write(name, []byte(data)); err != nil {
			return files, err
		}
	}

	var errs error
	for _, entry := range pages.Entries() {
		var buf bytes.Buffer
		if err := ogimage.Render(&buf, entry.Card); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", entry.Path, err))
			continue
		}
		if err := write(strings.TrimPrefix(seo.ImagePath(entry.Path), "/"), buf.Bytes()); err != nil {
			return files, err
		}
	}

	var logo bytes.Buffer
	if err := ogimage.RenderLogo(&logo, pages.LogoSize); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("logo: %w", err))
	} else if err := write(strings.TrimPrefix(share.Site.Logo, "/"), logo.Bytes()); err != nil {
		return files, err
	}

	return files, errs
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

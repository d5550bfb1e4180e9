package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/invoiceflow/site/config"
	"github.com/invoiceflow/site/service"
	"github.com/invoiceflow/site/share"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/exception"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the site",
	Long:  "Start the site",
	Run: func(cmd *cobra.Command, args []string) {
		defer func() {
			err := exception.Catch(recover())
			if err != nil {
				fmt.Println(color.RedString("Fatal: %s", err.Error()))
				os.Exit(1)
			}
		}()

		Boot()
		cfg := config.Conf

		srv, err := service.Start(cfg)
		if err != nil {
			fmt.Println(color.RedString("Fatal: %s", err.Error()))
			os.Exit(1)
		}

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

		for {
			select {
			case event := <-srv.Event():
				switch event {
				case service.READY:
					printBanner(cfg, srv)
				case service.CLOSED, service.ERROR:
					fmt.Println(color.YellowString("✨STOPPED✨"))
					return
				}

			case <-interrupt:
				service.Stop(srv)
				config.CloseLog()
				fmt.Println(color.YellowString("✨STOPPED✨"))
				return
			}
		}
	},
}

func printBanner(cfg config.Config, srv *service.Server) {
	mode := color.GreenString(cfg.Mode)
	if config.IsDevelopment() {
		mode = color.RedString(cfg.Mode)
	}

	port, _ := srv.Port()
	host := cfg.Host
	if host == "0.0.0.0" || host == "" {
		host = "127.0.0.1"
	}
	scheme := "http"
	if cfg.Cert != "" && cfg.Key != "" {
		scheme = "https"
	}
	local := fmt.Sprintf("%s://%s:%d", scheme, host, port)

	allows := "*"
	if len(cfg.AllowFrom) > 0 {
		allows = strings.Join(cfg.AllowFrom, ", ")
	}

	fmt.Println(color.WhiteString("---------------------------------"))
	fmt.Println(color.WhiteString("%s v%s", share.Site.Name, share.VERSION), mode)
	fmt.Println(color.WhiteString("---------------------------------"))
	fmt.Println(color.GreenString("Site:      "), color.WhiteString("%s/", local))
	fmt.Println(color.GreenString("Generator: "), color.WhiteString("%s/invoice-generator", local))
	fmt.Println(color.GreenString("API:       "), color.WhiteString("%s/api", local))
	fmt.Println(color.GreenString("Base URL:  "), color.WhiteString(cfg.BaseURL))
	fmt.Println(color.GreenString("CORS:      "), color.WhiteString(allows))
	fmt.Println(color.GreenString("Log:       "), color.WhiteString(cfg.Log))
	fmt.Println("")
	fmt.Println(color.GreenString("✨LISTENING✨"))
}

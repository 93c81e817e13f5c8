/*
Copyright © 2025 paperdesk
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paperdesk-be",
	Short: "Backend for the paperdesk question paper library",
	Long: `paperdesk-be serves the question paper library: uploads, paper
metadata and social features, study group chat, AI study help and
full text search. Run "paperdesk-be start" to start the HTTP server.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file")
}

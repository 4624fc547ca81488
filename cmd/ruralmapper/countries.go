package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruralmapper/ruralmapper/pkg/config"
)

func newCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List supported countries and their known providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, code := range config.SupportedCountries() {
				country, ok := config.CountryByCode(code)
				if !ok {
					continue
				}
				fmt.Printf("%s  %s\n", code, country.Name)
				fmt.Printf("    %s\n", strings.Join(country.Providers, ", "))
			}
			return nil
		},
	}
}

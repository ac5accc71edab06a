package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"localefinder/internal/domain"
	"localefinder/internal/domain/keytree"
	"localefinder/internal/infrastructure/i18n"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		locales string
		key     string
		source  string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load every default catalog with go-i18n and report its messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			log := a.logger()
			store, closeStore, err := a.openStore(cmd.Context(), cfg, false, log)
			if err != nil {
				return err
			}
			defer closeStore()

			var list []string
			if locales == "" || locales == "all" {
				if list, err = store.ListLocales(cmd.Context()); err != nil {
					return err
				}
			} else {
				for _, l := range strings.Split(locales, ",") {
					if l = strings.TrimSpace(l); l != "" {
						list = append(list, l)
					}
				}
			}
			if len(list) == 0 {
				return fmt.Errorf("%w: no locale catalogs found", domain.ErrConfiguration)
			}

			verifier := i18n.NewVerifier(source)
			var failed []error
			for _, locale := range list {
				name := domain.CatalogName(locale, keytree.DefaultNamespace)
				data, err := store.Read(cmd.Context(), locale, keytree.DefaultNamespace)
				if err == nil && data == nil {
					err = errors.New("catalog does not exist")
				}
				var n int
				if err == nil {
					n, err = verifier.Load(locale, data)
				}
				if err != nil {
					fmt.Fprintf(a.stdout, "%s: %v\n", name, err)
					failed = append(failed, fmt.Errorf("%s: %w", name, err))
					continue
				}
				fmt.Fprintf(a.stdout, "%s: %d messages\n", name, n)
			}

			if key != "" {
				for _, locale := range list {
					msg, err := verifier.Lookup(locale, key)
					if err != nil {
						fmt.Fprintf(a.stdout, "%s %s: %v\n", locale, key, err)
						continue
					}
					fmt.Fprintf(a.stdout, "%s %s: %q\n", locale, key, msg)
				}
			}
			return errors.Join(failed...)
		},
	}
	cmd.Flags().StringVar(&locales, "locales", "all", `comma separated locales to check, or "all"`)
	cmd.Flags().StringVar(&key, "key", "", "also show how each locale renders this message id")
	cmd.Flags().StringVar(&source, "source", "en", "fallback locale for --key lookups")
	return cmd
}

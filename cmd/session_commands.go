package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/store"
	"github.com/fjod/go_cart/storefront/internal/ui"
	"github.com/urfave/cli/v2"
)

// The commands below act on state that is not persisted. They are mostly
// useful inside the shell, where the session outlives one command.

func navigateCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "navigate",
		Usage:     "go to a page",
		ArgsUsage: "<page>",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			page, err := requireArg(c, "page")
			if err != nil {
				return err
			}
			s.Navigation().Navigate(page)
			printLocation(c.App.Writer, s.Navigation().Selection())
			return nil
		}),
	}
}

func viewCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "switch between the store and admin views",
		ArgsUsage: "<store|admin>",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			arg, err := requireArg(c, "view")
			if err != nil {
				return err
			}
			view := domain.View(strings.ToLower(arg))
			if view != domain.ViewStore && view != domain.ViewAdmin {
				return fmt.Errorf("unknown view %q", arg)
			}
			s.Navigation().SetCurrentView(view)
			printLocation(c.App.Writer, s.Navigation().Selection())
			return nil
		}),
	}
}

func searchCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "set the search query",
		ArgsUsage: "<query...>",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			s.Navigation().SetSearchQuery(strings.Join(c.Args().Slice(), " "))
			printLocation(c.App.Writer, s.Navigation().Selection())
			return nil
		}),
	}
}

func openCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "open a product page",
		ArgsUsage: "<id>",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			id, err := requireArg(c, "product id")
			if err != nil {
				return err
			}
			nav := s.Navigation()
			nav.OpenProduct(id)
			printLocation(c.App.Writer, nav.Selection())
			if p, ok := nav.GetProduct(id); ok {
				printProduct(c.App.Writer, p, s.UI().IsInWishlist(id))
			}
			return nil
		}),
	}
}

func whereCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "where",
		Usage: "print the current navigation and UI flags",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			printLocation(c.App.Writer, s.Navigation().Selection())
			u := s.UI()
			fmt.Fprintf(c.App.Writer, "dark mode: %t  newsletter: %t  compare: %s\n",
				u.DarkMode(), u.NewsletterSubscribed(), dash(strings.Join(u.CompareList(), ",")))
			return nil
		}),
	}
}

func printLocation(w io.Writer, sel domain.NavigationSelection) {
	fmt.Fprintf(w, "%s/%s", sel.CurrentView, sel.CurrentPage)
	if sel.SelectedProductID != "" {
		fmt.Fprintf(w, "  product=%s", sel.SelectedProductID)
	}
	if sel.SearchQuery != "" {
		fmt.Fprintf(w, "  search=%q", sel.SearchQuery)
	}
	fmt.Fprintln(w)
}

func darkCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "dark",
		Usage: "toggle dark mode",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			s.UI().ToggleDarkMode()
			fmt.Fprintf(c.App.Writer, "dark mode: %t\n", s.UI().DarkMode())
			return nil
		}),
	}
}

func compareCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "toggle a product in the comparison, or clear it",
		ArgsUsage: "<id>|clear",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			id, err := requireArg(c, "product id")
			if err != nil {
				return err
			}
			u := s.UI()
			if id == "clear" {
				u.ClearCompare()
			} else if wasIn := u.IsInCompare(id); !u.ToggleCompare(id) && !wasIn {
				fmt.Fprintf(c.App.Writer, "comparison is full (%d products)\n", ui.MaxCompare)
			}
			fmt.Fprintf(c.App.Writer, "compare: %s\n", dash(strings.Join(u.CompareList(), ",")))
			return nil
		}),
	}
}

func newsletterCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "newsletter",
		Usage: "subscribe to the newsletter",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			s.UI().SubscribeNewsletter()
			fmt.Fprintln(c.App.Writer, "subscribed")
			return nil
		}),
	}
}

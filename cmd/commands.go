package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/store"
	"github.com/urfave/cli/v2"
)

// withSession runs fn against the shell's session, or mounts a fresh one for
// a single command and closes it afterwards.
func (env *environment) withSession(fn func(c *cli.Context, s *store.Store) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if env.sess != nil {
			return fn(c, env.sess.store)
		}
		sess, err := openSession(c.Context, env.cfg, env.log)
		if err != nil {
			return err
		}
		defer sess.Close()
		return fn(c, sess.store)
	}
}

func lineFlags(withQuantity bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "product", Aliases: []string{"p"}, Usage: "product id", Required: true},
		&cli.StringFlag{Name: "color", Usage: "selected color"},
		&cli.StringFlag{Name: "size", Usage: "selected size"},
	}
	if withQuantity {
		flags = append(flags, &cli.IntFlag{Name: "qty", Aliases: []string{"q"}, Value: 1, Usage: "quantity"})
	}
	return flags
}

func requireArg(c *cli.Context, name string) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("%s: missing %s", c.Command.Name, name)
	}
	return c.Args().First(), nil
}

func productsCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "list the catalog",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
			for _, p := range s.Products() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Category, p.Price, p.Stock)
			}
			return w.Flush()
		}),
	}
}

func productCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "product",
		Usage:     "show one product",
		ArgsUsage: "<id>",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			id, err := requireArg(c, "product id")
			if err != nil {
				return err
			}
			p, ok := s.Navigation().GetProduct(id)
			if !ok {
				return fmt.Errorf("unknown product %q", id)
			}
			printProduct(c.App.Writer, p, s.UI().IsInWishlist(p.ID))
			return nil
		}),
	}
}

func printProduct(w io.Writer, p domain.Product, wishlisted bool) {
	fmt.Fprintf(w, "%s  %s\n", p.ID, p.Name)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	if p.OriginalPrice > p.Price {
		fmt.Fprintf(w, "  price: %.2f (was %.2f)\n", p.Price, p.OriginalPrice)
	} else {
		fmt.Fprintf(w, "  price: %.2f\n", p.Price)
	}
	if len(p.Colors) > 0 {
		fmt.Fprintf(w, "  colors: %s\n", strings.Join(p.Colors, ", "))
	}
	if len(p.Sizes) > 0 {
		fmt.Fprintf(w, "  sizes: %s\n", strings.Join(p.Sizes, ", "))
	}
	fmt.Fprintf(w, "  stock: %d\n", p.Stock)
	if wishlisted {
		fmt.Fprintln(w, "  in wishlist")
	}
}

func cartCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "show or change the cart",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the cart",
				Action: env.withSession(func(c *cli.Context, s *store.Store) error {
					printCart(c.App.Writer, s.CartState())
					return nil
				}),
			},
			{
				Name:  "add",
				Usage: "add a product, merging with an identical line",
				Flags: lineFlags(true),
				Action: env.withSession(func(c *cli.Context, s *store.Store) error {
					p, ok := s.Navigation().GetProduct(c.String("product"))
					if !ok {
						return fmt.Errorf("unknown product %q", c.String("product"))
					}
					s.CartActions().AddToCart(p.LineItem(c.String("color"), c.String("size"), c.Int("qty")))
					printCart(c.App.Writer, s.CartState())
					return nil
				}),
			},
			{
				Name:  "remove",
				Usage: "remove one line",
				Flags: lineFlags(false),
				Action: env.withSession(func(c *cli.Context, s *store.Store) error {
					s.CartActions().RemoveFromCart(c.String("product"), c.String("color"), c.String("size"))
					printCart(c.App.Writer, s.CartState())
					return nil
				}),
			},
			{
				Name:  "update",
				Usage: "set the quantity of one line",
				Flags: lineFlags(true),
				Action: env.withSession(func(c *cli.Context, s *store.Store) error {
					s.CartActions().UpdateCartQuantity(c.String("product"), c.Int("qty"), c.String("color"), c.String("size"))
					printCart(c.App.Writer, s.CartState())
					return nil
				}),
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: env.withSession(func(c *cli.Context, s *store.Store) error {
					s.CartActions().ClearCart()
					printCart(c.App.Writer, s.CartState())
					return nil
				}),
			},
		},
	}
}

func printCart(w io.Writer, state cart.State) {
	items := state.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "cart is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d x %.2f\t%.2f\n",
			item.ProductID, item.Name, dash(item.Color), dash(item.Size), item.Quantity, item.Price, item.Subtotal())
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "items: %d  total: %.2f\n", state.CartCount(), state.CartTotal())
	if promo := state.AppliedPromo(); promo != nil {
		fmt.Fprintf(w, "promo %s: -%.2f  to pay: %.2f\n", promo.Code, promo.Discount, amountDue(state))
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// amountDue never goes below zero; fixed discounts are not capped by the
// cart total.
func amountDue(state cart.State) float64 {
	return max(0, state.CartTotal()-state.PromoDiscount())
}

func promoCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "promo",
		Usage:     "apply a promo code to the current cart",
		ArgsUsage: "<code>",
		Action: env.withSession(func(c *cli.Context, s *store.Store) error {
			code, err := requireArg(c, "code")
			if err != nil {
				return err
			}
			result := s.CartActions().ApplyPromoCode(code)
			fmt.Fprintln(c.App.Writer, result.Message)
			if result.Success {
				state := s.CartState()
				fmt.Fprintf(c.App.Writer, "total: %.2f  discount: %.2f  to pay: %.2f\n",
					state.CartTotal(), state.PromoDiscount(), amountDue(state))
			}
			return nil
		}),
	}
}

func wishlistCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "wishlist",
		Usage: "show or change the wishlist",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the wishlist",
				Action: env.withSession(func(c *cli.Context, s *store.Store) error {
					entries := s.UI().Wishlist()
					if len(entries) == 0 {
						fmt.Fprintln(c.App.Writer, "wishlist is empty")
						return nil
					}
					for _, e := range entries {
						name := "?"
						if p, ok := s.Navigation().GetProduct(e.ProductID); ok {
							name = p.Name
						}
						fmt.Fprintf(c.App.Writer, "%s  %s\n", e.ProductID, name)
					}
					return nil
				}),
			},
			{
				Name:      "toggle",
				Usage:     "add or remove a product",
				ArgsUsage: "<id>",
				Action: env.withSession(func(c *cli.Context, s *store.Store) error {
					id, err := requireArg(c, "product id")
					if err != nil {
						return err
					}
					if s.UI().ToggleWishlist(id) {
						fmt.Fprintf(c.App.Writer, "%s added to wishlist\n", id)
					} else {
						fmt.Fprintf(c.App.Writer, "%s removed from wishlist\n", id)
					}
					return nil
				}),
			},
		},
	}
}

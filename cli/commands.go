// Package cli provides the Cobra-based CLI for storefront.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storefront/cart"
	"storefront/catalog"
	"storefront/checkout"
	"storefront/domain"
	"storefront/storage"
	"storefront/util"
)

var (
	rootCmd = &cobra.Command{
		Use:   "storefront",
		Short: "A storefront cart and checkout client",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject stores
			if cartStore != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			backend, err := storage.New(
				viper.GetString("store"),
				viper.GetString("store-file"),
			)
			if err != nil {
				return err
			}
			cartStore = cart.NewStore(backend, slog.Default())
			wishlistStore = cart.NewWishlist(backend, slog.Default())
			sessionStore = storage.NewMemory()
			return nil
		},
	}

	cartStore     *cart.Store
	wishlistStore *cart.Wishlist
	sessionStore  storage.Store

	// overridden in tests to skip the simulated processor delay
	checkoutDelay = checkout.DefaultProcessingDelay
)

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func init() {
	rootCmd.PersistentFlags().String("store", "file", "store backend: memory|file")
	rootCmd.PersistentFlags().String("store-file", "data/storefront.json", "file store path")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("store-file", rootCmd.PersistentFlags().Lookup("store-file"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("STOREFRONT")
	viper.AutomaticEnv()

	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("storefront> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newCartCmd())
	rootCmd.AddCommand(newWishlistCmd())
	rootCmd.AddCommand(newCheckoutCmd())
}

func newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the product catalog",
	}

	var lCategory, lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products := catalog.Products()
			if lCategory != "" {
				filtered := products[:0]
				for _, p := range products {
					if strings.EqualFold(p.Category, lCategory) {
						filtered = append(filtered, p)
					}
				}
				products = filtered
			}
			if lOutput == "json" {
				printJSON(products)
				return nil
			}
			for _, p := range products {
				fmt.Printf("%d | %s | %s | %s\n",
					p.ID, p.Name, util.FormatPrice(p.Price), p.Category)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&lCategory, "category", "", "category")
	listCmd.Flags().StringVar(&lOutput, "output", "", "output format")
	catalogCmd.AddCommand(listCmd)

	showCmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a product by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalog.GetProductBySlug(args[0])
			if err != nil {
				if domain.IsProductNotFoundError(err) {
					fmt.Fprintln(os.Stderr, err)
					return nil
				}
				return err
			}
			printJSON(p)
			return nil
		},
	}
	catalogCmd.AddCommand(showCmd)

	var fCount int
	featuredCmd := &cobra.Command{
		Use:   "featured",
		Short: "List featured products",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range catalog.GetFeaturedProducts(fCount) {
				fmt.Printf("%d | %s | %s\n", p.ID, p.Name, util.FormatPrice(p.Price))
			}
			return nil
		},
	}
	featuredCmd.Flags().IntVar(&fCount, "count", 4, "max products")
	catalogCmd.AddCommand(featuredCmd)

	var rCount int
	relatedCmd := &cobra.Command{
		Use:   "related <id>",
		Short: "List products related to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			for _, p := range catalog.GetRelatedProducts(id, rCount) {
				fmt.Printf("%d | %s | %s | %s\n",
					p.ID, p.Name, util.FormatPrice(p.Price), p.Category)
			}
			return nil
		},
	}
	relatedCmd.Flags().IntVar(&rCount, "count", 4, "max products")
	catalogCmd.AddCommand(relatedCmd)

	return catalogCmd
}

func newCartCmd() *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	var addQuantity int
	addCmd := &cobra.Command{
		Use:   "add <slug>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalog.GetProductBySlug(args[0])
			if err != nil {
				return err
			}
			if err := cartStore.AddProduct(p, addQuantity); err != nil {
				slog.Error("cart add failed", "slug", args[0], "error", err)
				return err
			}
			slog.Info("cart add", "slug", args[0], "quantity", addQuantity)
			return printCart(cmd)
		},
	}
	addCmd.Flags().IntVar(&addQuantity, "quantity", 1, "quantity")
	cartCmd.AddCommand(addCmd)

	var updQuantity int
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Set a line item's quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			cartStore.UpdateQuantity(id, updQuantity)
			return printCart(cmd)
		},
	}
	updateCmd.Flags().IntVar(&updQuantity, "quantity", 1, "quantity")
	cartCmd.AddCommand(updateCmd)

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			cartStore.Remove(id)
			return printCart(cmd)
		},
	}
	cartCmd.AddCommand(removeCmd)

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			cartStore.Clear()
			fmt.Println("cart cleared")
			return nil
		},
	}
	cartCmd.AddCommand(clearCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCart(cmd)
		},
	}
	cartCmd.AddCommand(showCmd)

	return cartCmd
}

func printCart(cmd *cobra.Command) error {
	items := cartStore.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, it := range items {
		fmt.Printf("%d | %s | %s x %d\n",
			it.ProductID, it.Name, util.FormatPrice(it.Price), it.Quantity)
	}
	fmt.Printf("items: %d  subtotal: %s\n",
		cartStore.ItemCount(), util.FormatPrice(cartStore.Subtotal()))
	return nil
}

func newWishlistCmd() *cobra.Command {
	wishlistCmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the wishlist",
	}

	addCmd := &cobra.Command{
		Use:   "add <slug>",
		Short: "Add a product to the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalog.GetProductBySlug(args[0])
			if err != nil {
				return err
			}
			wishlistStore.Add(p)
			fmt.Printf("wishlist: %d products\n", wishlistStore.Count())
			return nil
		},
	}
	wishlistCmd.AddCommand(addCmd)

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a product from the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			wishlistStore.Remove(id)
			fmt.Printf("wishlist: %d products\n", wishlistStore.Count())
			return nil
		},
	}
	wishlistCmd.AddCommand(removeCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			products := wishlistStore.Products()
			if len(products) == 0 {
				fmt.Println("wishlist is empty")
				return nil
			}
			for _, p := range products {
				fmt.Printf("%d | %s | %s\n", p.ID, p.Name, util.FormatPrice(p.Price))
			}
			return nil
		},
	}
	wishlistCmd.AddCommand(showCmd)

	return wishlistCmd
}

// newCheckoutCmd runs the wizard interactively over the command's
// input stream, step by step, reprinting field errors until each step
// validates.
func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Walk through checkout interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := checkout.New(cartStore, sessionStore, slog.Default())
			w.SetProcessingDelay(checkoutDelay)
			if err := w.CanActivate(); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "cart is empty, nothing to check out")
				return nil
			}

			out := cmd.OutOrStdout()
			r := bufio.NewReader(cmd.InOrStdin())

			for {
				d, err := readShipping(out, r, w.Shipping())
				if err != nil {
					return abortCheckout(out, err)
				}
				h, err := w.SubmitShipping(d)
				if err != nil {
					printFieldErrors(out, err)
					continue
				}
				fmt.Fprintf(out, "redirecting to payment, amount=%s\n", h.Amount)
				break
			}
			w.Resume()

			for {
				d, err := readPayment(out, r)
				if err != nil {
					return abortCheckout(out, err)
				}
				if err := w.SubmitPayment(d); err != nil {
					printFieldErrors(out, err)
					continue
				}
				break
			}

			for {
				d, err := readReview(out, r)
				if err != nil {
					return abortCheckout(out, err)
				}
				order, err := w.SubmitReview(cmd.Context(), d)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					printFieldErrors(out, err)
					continue
				}
				fmt.Fprintf(out, "order placed: %s  total: %s\n",
					order.Number, util.FormatPrice(order.Total))
				return nil
			}
		},
	}
}

// abortCheckout turns input exhaustion into a clean exit. Real read
// failures still surface.
func abortCheckout(out io.Writer, err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(out, "checkout aborted")
		return nil
	}
	return err
}

func prompt(out io.Writer, r *bufio.Reader, label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}

func readShipping(out io.Writer, r *bufio.Reader, d domain.ShippingDetails) (domain.ShippingDetails, error) {
	var err error
	fields := []struct {
		label string
		dst   *string
	}{
		{"First name", &d.FirstName},
		{"Last name", &d.LastName},
		{"Email", &d.Email},
		{"Phone", &d.Phone},
		{"Address", &d.Address},
		{"Apartment (optional)", &d.Apartment},
		{"City", &d.City},
		{"Country", &d.Country},
	}
	for _, f := range fields {
		if *f.dst, err = prompt(out, r, f.label, *f.dst); err != nil {
			return d, err
		}
	}
	if states := checkout.StatesFor(d.Country); states != nil {
		fmt.Fprintf(out, "States: %s\n", strings.Join(states, ", "))
	}
	if d.State, err = prompt(out, r, "State/Province", d.State); err != nil {
		return d, err
	}
	if d.ZipCode, err = prompt(out, r, "ZIP/Postal code", d.ZipCode); err != nil {
		return d, err
	}
	return d, nil
}

func readPayment(out io.Writer, r *bufio.Reader) (domain.PaymentDetails, error) {
	var d domain.PaymentDetails
	var err error
	if d.CardNumber, err = prompt(out, r, "Card number", ""); err != nil {
		return d, err
	}
	if d.CardName, err = prompt(out, r, "Name on card", ""); err != nil {
		return d, err
	}
	if d.ExpiryDate, err = prompt(out, r, "Expiry (MM/YY)", ""); err != nil {
		return d, err
	}
	if d.CVV, err = prompt(out, r, "CVV", ""); err != nil {
		return d, err
	}
	return d, nil
}

func readReview(out io.Writer, r *bufio.Reader) (domain.ReviewDetails, error) {
	var d domain.ReviewDetails
	var err error
	if d.OrderNotes, err = prompt(out, r, "Order notes (optional)", ""); err != nil {
		return d, err
	}
	accept, err := prompt(out, r, "Accept terms? (y/N)", "")
	if err != nil {
		return d, err
	}
	d.AcceptTerms = accept == "y" || accept == "Y"
	return d, nil
}

func printFieldErrors(out io.Writer, err error) {
	verr, ok := domain.AsValidationError(err)
	if !ok {
		fmt.Fprintln(out, err)
		return
	}
	for _, field := range sortedKeys(verr.Fields) {
		fmt.Fprintf(out, "  %s: %s\n", field, verr.Fields[field])
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func Execute() error {
	return rootCmd.Execute()
}

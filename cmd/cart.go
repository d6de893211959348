package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"storefront.GO/api"
	"storefront.GO/html"
	"storefront.GO/model/entity"
)

func printTotals(out io.Writer, t entity.CartTotals) {
	if t.IsEmpty {
		fmt.Fprintln(out, "Cart is empty")
		return
	}
	fmt.Fprintf(out, "Cart: %d item(s), %s\n", t.TotalQuantity, html.FormatPrice(t.TotalAmount))
}

func parseID(out io.Writer, arg, what string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(out, "Invalid %s: %s\n", what, arg)
		return 0, false
	}
	return id, true
}

var cartCountCmd = &cobra.Command{
	Use:   "cart:count",
	Short: "Print the number of items in the cart",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		s := newSession(out)
		defer s.close()
		n, err := s.client.CartCount(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "Cart count unavailable: %s\n", api.Message(err))
			return
		}
		fmt.Fprintln(out, n)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "cart:add <product-id> [quantity]",
	Short: "Add a product to the cart",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, ok := parseID(out, args[0], "product id")
		if !ok {
			return
		}
		qty := 1
		if len(args) == 2 {
			qty, _ = strconv.Atoi(args[1])
		}
		s := newSession(out)
		defer s.close()
		// the notifier prints the outcome
		if err := s.ctl.AddToCart(cmd.Context(), id, qty); err == nil {
			fmt.Fprintf(out, "Cart count: %d\n", s.ctl.Snapshot().CartCount)
		}
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "cart:show",
	Short: "Show the cart contents",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		s := newSession(out)
		defer s.close()
		cart, err := s.client.Cart(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "Cart unavailable: %s\n", api.Message(err))
			return
		}
		for _, item := range cart.Items {
			fmt.Fprintf(out, "[%d] %s x%d @ %s\n", item.ID, item.Product.Name, item.Quantity, html.FormatPrice(item.UnitPrice))
		}
		printTotals(out, entity.CartTotals{TotalQuantity: cart.TotalQuantity, TotalAmount: cart.TotalAmount, IsEmpty: cart.IsEmpty})
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "cart:update <cart-item-id> <quantity>",
	Short: "Change the quantity of a cart line",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, ok := parseID(out, args[0], "cart item id")
		if !ok {
			return
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(out, "Invalid quantity: %s\n", args[1])
			return
		}
		s := newSession(out)
		defer s.close()
		t, err := s.client.UpdateCartItem(cmd.Context(), id, qty)
		if err != nil {
			fmt.Fprintf(out, "Update failed: %s\n", api.Message(err))
			return
		}
		printTotals(out, t)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "cart:remove <cart-item-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, ok := parseID(out, args[0], "cart item id")
		if !ok {
			return
		}
		s := newSession(out)
		defer s.close()
		t, err := s.client.RemoveCartItem(cmd.Context(), id)
		if err != nil {
			fmt.Fprintf(out, "Remove failed: %s\n", api.Message(err))
			return
		}
		printTotals(out, t)
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "cart:clear",
	Short: "Empty the cart",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		s := newSession(out)
		defer s.close()
		if err := s.client.ClearCart(cmd.Context()); err != nil {
			fmt.Fprintf(out, "Clear failed: %s\n", api.Message(err))
			return
		}
		fmt.Fprintln(out, "Cart is empty")
	},
}

func init() {
	rootCmd.AddCommand(cartCountCmd, cartAddCmd, cartShowCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd)
}

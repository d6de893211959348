package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"storefront.GO/api"
	"storefront.GO/html"
	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
)

var (
	listQuery    string
	listCategory string
	listBrand    string
	listSort     string
	listSize     int
	listPage     int
)

var productsListCmd = &cobra.Command{
	Use:   "products:list",
	Short: "List one page of the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		opt, err := catalog.ParseSortOption(listSort)
		if err != nil {
			fmt.Fprintf(out, "Invalid sort: %v\n", err)
			return
		}
		size, err := catalog.ParsePageSize(listSize)
		if err != nil {
			fmt.Fprintf(out, "Invalid size: %v (use 12, 24 or 48)\n", err)
			return
		}

		s := newSession(out)
		defer s.close()
		q := catalog.Query{
			Text:          strings.TrimSpace(listQuery),
			Category:      listCategory,
			Brand:         listBrand,
			SortField:     opt.Field,
			SortDirection: opt.Direction,
			PageSize:      size,
		}
		// errors are already printed by the notifier
		_ = s.ctl.FetchPage(cmd.Context(), q, listPage-1)
		if err := html.RenderText(out, s.ctl.Snapshot()); err != nil {
			fmt.Fprintf(out, "Render failed: %v\n", err)
		}
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "products:show <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(out, "Invalid product id: %s\n", args[0])
			return
		}
		s := newSession(out)
		defer s.close()
		p, err := s.client.Product(cmd.Context(), id)
		if err != nil {
			fmt.Fprintf(out, "Product %d: %s\n", id, api.Message(err))
			return
		}
		fmt.Fprintf(out, "#%d %s\n", p.ID, p.Name)
		fmt.Fprintf(out, "Price:    %s\n", html.FormatPrice(p.Price))
		fmt.Fprintf(out, "Rating:   %s %s (%d reviews)\n", html.Stars(p.Rating), html.FormatRating(p.Rating), p.ReviewCount)
		fmt.Fprintf(out, "Brand:    %s\nCategory: %s\n", p.Brand, p.Category)
		if badge := html.StockBadge(p); badge != "" {
			fmt.Fprintf(out, "Stock:    %s\n", badge)
		} else {
			fmt.Fprintf(out, "Stock:    %d\n", p.Stock)
		}
		if p.Description != "" {
			fmt.Fprintf(out, "\n%s\n", p.Description)
		}
	},
}

var productsSuggestCmd = &cobra.Command{
	Use:   "products:suggest <text>",
	Short: "Search suggestions for a partial query",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		s := newSession(out)
		defer s.close()
		printSuggestions(cmd.Context(), out, s.ctl, strings.Join(args, " "))
	},
}

func optionsCommand(use, short string, pick func(catalog.Snapshot) []string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			s := newSession(out)
			defer s.close()
			s.ctl.LoadFilters(cmd.Context())
			for _, v := range pick(s.ctl.Snapshot()) {
				fmt.Fprintln(out, v)
			}
		},
	}
}

type suggester interface {
	Suggestions(ctx context.Context, q string) ([]entity.Suggestion, error)
}

func printSuggestions(ctx context.Context, out io.Writer, src suggester, q string) {
	list, err := src.Suggestions(ctx, q)
	if err != nil {
		fmt.Fprintf(out, "Suggestions unavailable: %s\n", api.Message(err))
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No suggestions")
		return
	}
	for _, sg := range list {
		fmt.Fprintf(out, "#%d %s (%s) %s\n", sg.ID, sg.Name, sg.Category, html.FormatPrice(sg.Price))
	}
}

func init() {
	productsListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "search text")
	productsListCmd.Flags().StringVar(&listCategory, "category", "", "category filter")
	productsListCmd.Flags().StringVar(&listBrand, "brand", "", "brand filter")
	productsListCmd.Flags().StringVar(&listSort, "sort", "name-asc", "name-asc, name-desc, price-asc, price-desc or rating-desc")
	productsListCmd.Flags().IntVar(&listSize, "size", int(catalog.DefaultPageSize), "page size: 12, 24 or 48")
	productsListCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number, starting at 1")

	rootCmd.AddCommand(productsListCmd, productsShowCmd, productsSuggestCmd,
		optionsCommand("products:categories", "List product categories", func(s catalog.Snapshot) []string { return s.Categories }),
		optionsCommand("products:brands", "List product brands", func(s catalog.Snapshot) []string { return s.Brands }),
	)
}

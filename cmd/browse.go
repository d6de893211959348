package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"storefront.GO/html"
	"storefront.GO/service/catalog"
)

var bannerFonts = []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "doom", "larry3d", "puffy", "rectangles"}

var browseHelp = `Commands:
  search <text>        search products (empty text clears)
  type <text>          type into the search box; applied after the debounce delay
  category <name|all>  filter by category
  brand <name|all>     filter by brand
  sort <option>        name-asc, name-desc, price-asc, price-desc, rating-desc
  size <12|24|48>      page size
  page <n>, next, prev move between pages
  add <id> [qty]       add a product to the cart
  suggest <text>       search suggestions
  show                 redraw the listing
  filters              list categories and brands
  help, quit
`

// browser is the catalog:browse REPL.
type browser struct {
	out   io.Writer
	ctl   *catalog.Controller
	plain bool
}

// exec runs one input line and reports whether the session should end.
func (b *browser) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	var err error
	render := true
	switch strings.ToLower(verb) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(b.out, browseHelp)
		return false
	case "search", "s":
		b.ctl.SetText(arg)
		b.ctl.FlushText()
	case "type":
		b.ctl.SetText(arg)
		render = false
	case "category":
		err = b.ctl.SetFilter(catalog.FilterCategory, allToEmpty(arg))
	case "brand":
		err = b.ctl.SetFilter(catalog.FilterBrand, allToEmpty(arg))
	case "sort":
		err = b.ctl.ApplySortOption(arg)
	case "size":
		n, convErr := strconv.Atoi(arg)
		if convErr != nil {
			n = 0
		}
		err = b.ctl.SetPageSize(n)
	case "page", "p":
		n, convErr := strconv.Atoi(arg)
		if convErr != nil || !b.ctl.ChangePage(n-1) {
			fmt.Fprintln(b.out, "No such page")
			return false
		}
	case "next", "n":
		if !b.ctl.NextPage() {
			fmt.Fprintln(b.out, "Already on the last page")
			return false
		}
	case "prev", "previous":
		if !b.ctl.PreviousPage() {
			fmt.Fprintln(b.out, "Already on the first page")
			return false
		}
	case "add", "a":
		fields := strings.Fields(arg)
		if len(fields) == 0 {
			fmt.Fprintln(b.out, "Usage: add <id> [qty]")
			return false
		}
		id, ok := parseID(b.out, fields[0], "product id")
		if !ok {
			return false
		}
		qty := 1
		if len(fields) > 1 {
			qty, _ = strconv.Atoi(fields[1])
		}
		b.ctl.AddToCartAsync(id, qty)
		render = false
	case "suggest":
		printSuggestions(ctx, b.out, b.ctl, arg)
		return false
	case "filters":
		snap := b.ctl.Snapshot()
		fmt.Fprintf(b.out, "Categories: %s\nBrands: %s\n", strings.Join(snap.Categories, ", "), strings.Join(snap.Brands, ", "))
		return false
	case "show", "ls":
	default:
		fmt.Fprintf(b.out, "Unknown command %q, try help\n", verb)
		return false
	}
	if err != nil {
		fmt.Fprintf(b.out, "%v\n", err)
		return false
	}

	b.ctl.Wait()
	if render {
		_ = html.RenderText(b.out, b.ctl.Snapshot())
	}
	return false
}

func allToEmpty(s string) string {
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

func (b *browser) banner() {
	if b.plain {
		return
	}
	fig := figure.NewFigure("Storefront", bannerFonts[rand.Intn(len(bannerFonts))], true)
	fmt.Fprintln(b.out, fig.String())
}

var browsePlain bool

var browseCmd = &cobra.Command{
	Use:   "catalog:browse",
	Short: "Browse the catalog interactively",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		s := newSession(out)
		defer s.close()
		b := &browser{out: out, ctl: s.ctl, plain: browsePlain}
		b.banner()

		_ = s.ctl.Init(cmd.Context())
		_ = html.RenderText(out, s.ctl.Snapshot())
		fmt.Fprintln(out, "Type help for commands.")

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return
			}
			if b.exec(cmd.Context(), scanner.Text()) {
				return
			}
		}
	},
}

func init() {
	browseCmd.Flags().BoolVar(&browsePlain, "plain", false, "skip the banner")
	rootCmd.AddCommand(browseCmd)
}

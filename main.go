// main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"jgpos/internal/auth"
	"jgpos/internal/catalog"
	"jgpos/internal/config"
	"jgpos/internal/device"
	"jgpos/internal/inventory"
	"jgpos/internal/logger"
	"jgpos/internal/poller"
	"jgpos/internal/receipt"
	"jgpos/internal/reports"
	"jgpos/internal/sales"
	"jgpos/internal/storage"
)

// productRefreshInterval mirrors the sales screen's periodic re-sync of the
// product list while a cart is open.
const productRefreshInterval = 3 * time.Second

// Register bundles the services behind the console. The products field is
// the current snapshot kept fresh by the background poller.
type Register struct {
	store     storage.Store
	catalog   *catalog.Catalog
	inventory *inventory.Service
	auth      *auth.Service
	cart      *sales.Cart
	counter   *receipt.Counter
	deviceID  string

	mu       sync.RWMutex
	products []catalog.Product
}

func main() {
	// Step 1: Setup configuration first
	config.LoadEnv()

	// Step 2: Setup logging
	loggerConfig := config.LoggerConfig()
	if err := logger.SetupLogger(loggerConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Only NOW is logging safe to use!
	config.ConfigurePaths()
	logger.LogInfo("Environment and paths loaded. Logger ready.")
	config.LogCurrentEnvironment()

	// Step 3: Open the local store
	store, err := storage.Open(config.DatabasePath)
	if err != nil {
		logger.LogFatal("Failed to open store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Step 4: Register identity
	deviceID, err := device.Ensure(ctx, store)
	if err != nil {
		logger.LogFatal("Failed to establish register id: %v", err)
	}

	cat := catalog.New(store)
	register := &Register{
		store:     store,
		catalog:   cat,
		inventory: inventory.NewService(store, cat),
		auth:      auth.NewService(store),
		cart:      sales.NewCart(ctx, store),
		counter:   receipt.NewCounter(store),
		deviceID:  deviceID,
	}
	if products, err := cat.LoadProducts(ctx); err == nil {
		register.setProducts(products)
	}

	// Step 5: Start background product refresh
	go poller.Watch(ctx, cat, productRefreshInterval, register.setProducts)

	// Step 6: Run the console until EOF or a shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logger.LogInfo("Shutdown signal received")
		cancel()
		os.Stdin.Close()
	}()

	logger.LogInfo("Register %s ready on %s", deviceID, config.StoreName)
	register.Run(ctx)
	logger.LogInfo("Register shut down gracefully")
}

func (r *Register) setProducts(products []catalog.Product) {
	r.mu.Lock()
	r.products = products
	r.mu.Unlock()
}

func (r *Register) snapshot() []catalog.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.Product(nil), r.products...)
}

func (r *Register) findProduct(id string) (catalog.Product, bool) {
	for _, p := range r.snapshot() {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// Run reads commands line by line. Every command completes before the next
// line is read; there is no parallelism within a handler.
func (r *Register) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("JGP register console. Type 'help' for commands.")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]

		if command == "quit" || command == "exit" {
			return
		}
		if err := r.dispatch(ctx, command, args); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func (r *Register) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		printHelp()
		return nil
	case "login":
		if len(args) < 2 {
			return errors.New("usage: login <email> <password>")
		}
		user, err := r.auth.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Welcome, %s\n", user.Name)
		return nil
	}

	// Everything below is behind the session guard.
	loggedIn, err := r.auth.IsLoggedIn(ctx)
	if err != nil {
		return err
	}
	if !loggedIn {
		return errors.New("please log in first")
	}

	switch command {
	case "logout":
		return r.auth.Logout(ctx)
	case "products":
		return r.listProducts(ctx, strings.Join(args, " "))
	case "addproduct":
		return r.addProduct(ctx, args)
	case "delproduct":
		if len(args) != 1 {
			return errors.New("usage: delproduct <id>")
		}
		return r.inventory.DeleteProduct(ctx, args[0])
	case "categories":
		return r.listCategories(ctx)
	case "addcat":
		if len(args) == 0 {
			return errors.New("usage: addcat <name>")
		}
		return r.catalog.UpsertCategory(ctx, catalog.Category{Name: strings.Join(args, " ")})
	case "delcat":
		if len(args) != 1 {
			return errors.New("usage: delcat <id>")
		}
		return r.catalog.DeleteCategory(ctx, args[0])
	case "adjust":
		if len(args) < 4 {
			return errors.New("usage: adjust <product-id> <add|remove> <quantity> <reason>")
		}
		_, err := r.inventory.AdjustStock(ctx, args[0], args[1], args[2], strings.Join(args[3:], " "))
		return err
	case "add":
		if len(args) != 1 {
			return errors.New("usage: add <product-id>")
		}
		product, found := r.findProduct(args[0])
		if !found {
			return fmt.Errorf("no product %q", args[0])
		}
		return r.cart.Add(ctx, product)
	case "remove":
		if len(args) != 1 {
			return errors.New("usage: remove <product-id>")
		}
		r.cart.Remove(ctx, args[0])
		return nil
	case "undo":
		return r.cart.UndoRemove(ctx)
	case "cart":
		r.printCart()
		return nil
	case "checkout":
		return r.checkout(ctx)
	case "receipt":
		return r.printReceipt(ctx)
	case "report":
		return r.dailyReport(ctx)
	case "stats":
		return r.inventoryStats(ctx)
	default:
		return fmt.Errorf("unknown command %q (try 'help')", command)
	}
}

func (r *Register) listProducts(ctx context.Context, query string) error {
	products, err := r.catalog.LoadProducts(ctx)
	if err != nil {
		return err
	}
	r.setProducts(products)

	for _, p := range catalog.SortByName(catalog.FilterProducts(products, query, "")) {
		fmt.Printf("%s  %-24s %10s  stock %d (min %d)  [%s]\n",
			p.ID, p.Name, receipt.FormatCurrency(p.Price), p.Stock, p.MinStock, p.Category)
	}
	return nil
}

func (r *Register) addProduct(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: addproduct <name> <price> <stock> [category] [minStock]")
	}
	form := catalog.ProductForm{Name: args[0], Price: args[1], Stock: args[2]}
	if len(args) > 3 {
		form.Category = args[3]
	}
	if len(args) > 4 {
		form.MinStock = args[4]
	}

	product, err := catalog.ParseProductForm(form)
	if err != nil {
		return err
	}
	if err := r.catalog.UpsertProduct(ctx, product); err != nil {
		return err
	}
	fmt.Println("added", product.ID)
	return nil
}

func (r *Register) listCategories(ctx context.Context) error {
	categories, err := r.catalog.LoadCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%s  %s\n", c.ID, c.Name)
	}
	return nil
}

func (r *Register) printCart() {
	items := r.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, item := range items {
		fmt.Printf("%dx %-24s %10s\n", item.Quantity, item.Name,
			receipt.FormatCurrency(item.Price*float64(item.Quantity)))
	}
	_, total := r.cart.Totals()
	fmt.Printf("Total: %s\n", receipt.FormatCurrency(total))
}

func (r *Register) checkout(ctx context.Context) error {
	sale, todayTotal, err := sales.Checkout(ctx, r.store, r.cart)
	if err != nil {
		if errors.Is(err, sales.ErrEmptyCart) {
			return nil
		}
		return err
	}
	fmt.Printf("Sale %s recorded. Today's total sales: %s\n",
		sale.ID, receipt.FormatCurrency(todayTotal))
	return nil
}

// printReceipt renders the current cart to an HTML file in the data
// directory, standing in for the print/share surface. The counter advances
// only after the file is written.
func (r *Register) printReceipt(ctx context.Context) error {
	number, err := r.counter.Current(ctx)
	if err != nil {
		return err
	}
	_, total := r.cart.Totals()
	html, err := receipt.RenderSalesReceipt(r.cart.Items(), total, number, time.Now())
	if err != nil {
		return err
	}

	path := filepath.Join(config.DataDirectory(), fmt.Sprintf("receipt_%06d.html", number))
	if err := os.WriteFile(path, []byte(html), 0o664); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	if err := r.counter.Advance(ctx); err != nil {
		return err
	}
	fmt.Println("Receipt written to", path)
	return nil
}

func (r *Register) dailyReport(ctx context.Context) error {
	history, err := sales.LoadSales(ctx, r.store)
	if err != nil {
		return err
	}
	today := time.Now().UTC().Format("2006-01-02")
	stats := reports.ComputeDailyStats(history, today)

	html, err := reports.DailyReportHTML(stats, history, today, r.deviceID)
	if err != nil {
		return err
	}
	path := filepath.Join(config.DataDirectory(), fmt.Sprintf("report_%s.html", today))
	if err := os.WriteFile(path, []byte(html), 0o664); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("Sales %s | Items %d | Avg order %s | Transactions %d\n",
		receipt.FormatCurrency(stats.TotalSales), stats.TotalItems,
		receipt.FormatCurrency(stats.AverageOrderValue), stats.Transactions)
	fmt.Println("Report written to", path)
	return nil
}

func (r *Register) inventoryStats(ctx context.Context) error {
	products, err := r.catalog.LoadProducts(ctx)
	if err != nil {
		return err
	}
	stats := catalog.ComputeStats(products)
	fmt.Printf("Items %d | Low stock %d | Value %s | Avg stock %.1f\n",
		stats.TotalItems, stats.LowStock,
		receipt.FormatCurrency(stats.TotalValue), stats.AverageStock)
	return nil
}

func printHelp() {
	fmt.Println(`Commands:
  login <email> <password>      start a session
  logout                        end the session
  products [query]              list/search the catalog
  addproduct <name> <price> <stock> [category] [minStock]
  delproduct <id>               delete a product (and its adjustments)
  categories | addcat <name> | delcat <id>
  adjust <id> <add|remove> <qty> <reason>
  add <id> | remove <id> | undo | cart
  checkout                      record the sale and clear the cart
  receipt                       render the cart receipt to a file
  report                        daily sales report
  stats                         inventory summary
  quit`)
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/cli/internal/flags"
	"github.com/getmockd/storeadmin/pkg/cli/internal/output"
	"github.com/getmockd/storeadmin/pkg/recordfile"
	"github.com/getmockd/storeadmin/pkg/view"
)

// productFlags holds the field flags shared by products add and edit.
type productFlags struct {
	file        string
	name        string
	description string
	category    string
	price       float64
	stock       int
	tags        flags.StringSlice
	image       string
}

var productFieldFlags = []string{"name", "description", "category", "price", "stock", "tag", "image"}

func (f *productFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "file", "f", "", "Read the product from a YAML or JSON file")
	fs.StringVar(&f.name, "name", "", "Product name")
	fs.StringVar(&f.description, "description", "", "Product description")
	fs.StringVar(&f.category, "category", "", "Category: electronics, furniture, home, fashion")
	fs.Float64Var(&f.price, "price", 0, "Unit price")
	fs.IntVar(&f.stock, "stock", 0, "Units in stock")
	fs.Var(&f.tags, "tag", "Tag (repeatable or comma-separated)")
	fs.StringVar(&f.image, "image", "", "Image URL")
}

// apply copies the explicitly set flags onto p.
func (f *productFlags) apply(cmd *cobra.Command, p *types.Product) error {
	fs := cmd.Flags()
	if fs.Changed("name") {
		p.Name = f.name
	}
	if fs.Changed("description") {
		p.Description = f.description
	}
	if fs.Changed("category") {
		c, err := types.ParseCategory(f.category)
		if err != nil {
			return err
		}
		p.Category = c
	}
	if fs.Changed("price") {
		p.Price = f.price
	}
	if fs.Changed("stock") {
		p.Stock = f.stock
	}
	if fs.Changed("tag") {
		p.Tags = f.tags.String()
	}
	if fs.Changed("image") {
		p.Image = f.image
	}
	return nil
}

var (
	productsFilter   string
	productsJSONPath string
	productAdd       productFlags
	productEdit      productFlags
	productsDryRun   bool
	productDeleteYes bool
)

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"product"},
	Short:   "Manage the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Example: `  storeadmin products list
  storeadmin products list --filter 'price > 10 && category == "HOME"'
  storeadmin products list --jsonpath '$[*].name'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, sel, err := compileQuery(productsFilter, productsJSONPath)
		if err != nil {
			return err
		}
		s := newSession()
		items, err := s.api.Products.ListAll(commandContext(cmd))
		if err != nil {
			return describeError(err, "product", "", s.cfg.APIURL)
		}
		return printRecords(cmd.OutOrStdout(), items, filter, sel, renderProducts)
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Long: `Add a product from flags, from a file, or (with neither) through an interactive form.
The refreshed product list is printed afterwards unless --quiet is given.`,
	Example: `  storeadmin products add --name Lamp --category home --price 19.5 --stock 3
  storeadmin products add --file lamp.yaml
  storeadmin products add`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var p types.Product
		switch {
		case productAdd.file != "":
			rec, err := loadOne(recordfile.LoadProducts, productAdd.file, "products")
			if err != nil {
				return err
			}
			p = rec
			p.ID = ""
		case anyChanged(cmd, productFieldFlags...):
			if err := productAdd.apply(cmd, &p); err != nil {
				return err
			}
		default:
			if err := runProductForm(&p); err != nil {
				return err
			}
		}
		if err := recordfile.ValidateRecord(recordfile.KindProduct, p); err != nil {
			return err
		}

		s := newSession()
		products := view.NewCRUD[types.Product]("products", s.api.Products, view.WithLogger(s.logger))
		created, err := products.Add(commandContext(cmd), p)
		if err != nil {
			return describeError(err, "product", "", s.cfg.APIURL)
		}
		return printMutation(cmd.OutOrStdout(), mutation{Action: "created", Resource: "product", ID: created.ID, Record: created},
			products.Items(), renderProducts)
	},
}

var productsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a product",
	Long: `Edit a product. Flags are applied over the product's current values and the
whole record is sent. With --file the file replaces every field. With neither,
an interactive form starts from the current values.`,
	Example: `  storeadmin products edit 7 --price 17.5
  storeadmin products edit 7 --file lamp.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := types.ID(args[0])
		ctx := commandContext(cmd)
		s := newSession()
		products := view.NewCRUD[types.Product]("products", s.api.Products, view.WithLogger(s.logger))
		if err := products.Load(ctx); err != nil {
			return describeError(err, "product", "", s.cfg.APIURL)
		}
		p, ok := view.Get(products.Collection, id)
		if !ok {
			return fmt.Errorf("%s", FormatNotFoundError("product", id))
		}

		switch {
		case productEdit.file != "":
			rec, err := loadOne(recordfile.LoadProducts, productEdit.file, "products")
			if err != nil {
				return err
			}
			p = rec
		case anyChanged(cmd, productFieldFlags...):
			if err := productEdit.apply(cmd, &p); err != nil {
				return err
			}
		default:
			if err := runProductForm(&p); err != nil {
				return err
			}
		}
		p.ID = id
		if err := recordfile.ValidateRecord(recordfile.KindProduct, p); err != nil {
			return err
		}

		updated, err := products.Edit(ctx, id, p)
		if err != nil {
			return describeError(err, "product", id, s.cfg.APIURL)
		}
		return printMutation(cmd.OutOrStdout(), mutation{Action: "updated", Resource: "product", ID: id, Record: updated},
			products.Items(), renderProducts)
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a product",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := types.ID(args[0])
		if err := confirmDelete("product", id, productDeleteYes); err != nil {
			return err
		}
		s := newSession()
		products := view.NewCRUD[types.Product]("products", s.api.Products, view.WithLogger(s.logger))
		if err := products.Remove(commandContext(cmd), id); err != nil {
			return describeError(err, "product", id, s.cfg.APIURL)
		}
		return printMutation(cmd.OutOrStdout(), mutation{Action: "deleted", Resource: "product", ID: id},
			products.Items(), renderProducts)
	},
}

var productsImportCmd = &cobra.Command{
	Use:   "import <file-or-glob>...",
	Short: "Add every product found in YAML or JSON files",
	Long: `Add every product found in the given files. Patterns support ** for recursive
matching. All records are validated before any request is sent; IDs in the
files are ignored and assigned by the backend.`,
	Example: `  storeadmin products import catalog.yaml
  storeadmin products import 'seed/**/*.json' --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := recordfile.LoadProducts(args...)
		if err != nil {
			return err
		}
		for i := range records {
			records[i].ID = ""
		}
		s := newSession()
		products := view.NewCRUD[types.Product]("products", s.api.Products, view.WithLogger(s.logger))
		return runImport(cmd, s, "product", records, productsDryRun, products, s.api.Products.Add, renderProducts)
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd, productsAddCmd, productsEditCmd, productsDeleteCmd, productsImportCmd)

	productsListCmd.Flags().StringVar(&productsFilter, "filter", "", "Only show products matching an expression, e.g. 'stock == 0'")
	productsListCmd.Flags().StringVar(&productsJSONPath, "jsonpath", "", "Print the values selected by a JSONPath, e.g. '$[*].name'")

	productAdd.bind(productsAddCmd)
	productEdit.bind(productsEditCmd)

	productsDeleteCmd.Flags().BoolVarP(&productDeleteYes, "yes", "y", false, "Do not ask for confirmation")
	productsImportCmd.Flags().BoolVar(&productsDryRun, "dry-run", false, "Validate the files without sending anything")
}

func renderProducts(w io.Writer, items []types.Product) error {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "No products")
		return nil
	}

	tw := output.Table(w)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tTAGS")
	for _, p := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%d\t%s\n",
			p.ID, output.Truncate(p.Name, 30), title(string(p.Category)), p.Price, p.Stock, output.Truncate(p.Tags, 25))
	}
	return tw.Flush()
}

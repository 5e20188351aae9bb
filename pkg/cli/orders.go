package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/cli/internal/output"
	"github.com/getmockd/storeadmin/pkg/recordfile"
	"github.com/getmockd/storeadmin/pkg/storeapi"
	"github.com/getmockd/storeadmin/pkg/view"
)

var (
	ordersFilter   string
	ordersJSONPath string
	orderSaveFile  string
)

var ordersCmd = &cobra.Command{
	Use:     "orders",
	Aliases: []string{"order"},
	Short:   "Review orders and change their status",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Example: `  storeadmin orders list
  storeadmin orders list --filter 'status == "pending"'
  storeadmin orders list --jsonpath '$[*].totalAmount'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, sel, err := compileQuery(ordersFilter, ordersJSONPath)
		if err != nil {
			return err
		}
		s := newSession()
		items, err := s.api.Orders.ListAll(commandContext(cmd))
		if err != nil {
			return describeError(err, "order", "", s.cfg.APIURL)
		}
		return printRecords(cmd.OutOrStdout(), items, filter, sel, renderOrders)
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change the status of an order",
	Long: `Change the status of an order. Only the status changes; the rest of the
order is sent back as it was listed.

Statuses: ` + strings.Join(statusNames(), ", "),
	Example: `  storeadmin orders status 12 shipped`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := types.ID(args[0])
		status, err := types.ParseOrderStatus(args[1])
		if err != nil {
			return fmt.Errorf("%w: %w", storeapi.ErrInvalidStatus, err)
		}

		ctx := commandContext(cmd)
		s := newSession()
		orders := newOrdersView(s)
		if err := orders.Load(ctx); err != nil {
			return describeError(err, "order", "", s.cfg.APIURL)
		}
		o, ok := view.Get(orders.Collection, id)
		if !ok {
			return fmt.Errorf("%s", FormatNotFoundError("order", id))
		}
		o.Status = status

		updated, err := orders.Edit(ctx, id, o)
		if err != nil {
			return describeError(err, "order", id, s.cfg.APIURL)
		}
		return printMutation(cmd.OutOrStdout(), mutation{Action: "updated", Resource: "order", ID: id, Record: updated},
			orders.Items(), renderOrders)
	},
}

var ordersSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create an order from a YAML or JSON file",
	Example: `  storeadmin orders save --file order.yaml`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := loadOne(recordfile.LoadOrders, orderSaveFile, "orders")
		if err != nil {
			return err
		}
		o.ID = ""

		s := newSession()
		orders := newOrdersView(s)
		saved, err := orders.Add(commandContext(cmd), o)
		if err != nil {
			return describeError(err, "order", "", s.cfg.APIURL)
		}
		return printMutation(cmd.OutOrStdout(), mutation{Action: "saved", Resource: "order", ID: saved.ID, Record: saved},
			orders.Items(), renderOrders)
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersListCmd, ordersStatusCmd, ordersSaveCmd)

	ordersListCmd.Flags().StringVar(&ordersFilter, "filter", "", "Only show orders matching an expression")
	ordersListCmd.Flags().StringVar(&ordersJSONPath, "jsonpath", "", "Print the values selected by a JSONPath")

	ordersSaveCmd.Flags().StringVarP(&orderSaveFile, "file", "f", "", "Order file (YAML or JSON)")
	_ = ordersSaveCmd.MarkFlagRequired("file")
}

// newOrdersView wires the order operations the backend supports: save and
// status change. Orders are never deleted from the admin surface.
func newOrdersView(s *session) *view.CRUD[types.Order] {
	return view.NewCRUDWithOps[types.Order]("orders", s.api.Orders, view.Ops[types.Order]{
		Add: s.api.Orders.Save,
		Edit: func(ctx context.Context, _ types.ID, o types.Order) (types.Order, error) {
			return s.api.Orders.UpdateStatus(ctx, o, o.Status)
		},
	}, view.WithLogger(s.logger))
}

func statusNames() []string {
	names := make([]string, len(types.OrderStatuses))
	for i, st := range types.OrderStatuses {
		names[i] = string(st)
	}
	return names
}

func renderOrders(w io.Writer, items []types.Order) error {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "No orders")
		return nil
	}

	tw := output.Table(w)
	_, _ = fmt.Fprintln(tw, "ID\tUSER\tITEMS\tTOTAL\tSTATUS\tCREATED")
	for _, o := range items {
		created := "-"
		if t, ok := o.CreatedTime(); ok {
			created = t.Format("2006-01-02 15:04")
		} else if o.CreatedAt != "" {
			created = o.CreatedAt
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\t%s\n",
			o.ID, o.UserID, o.ItemCount(), o.TotalAmount, title(string(o.Status)), created)
	}
	return tw.Flush()
}

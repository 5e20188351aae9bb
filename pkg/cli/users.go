package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/cli/internal/output"
	"github.com/getmockd/storeadmin/pkg/recordfile"
	"github.com/getmockd/storeadmin/pkg/view"
)

// userFlags holds the field flags shared by users add and edit.
type userFlags struct {
	file     string
	name     string
	email    string
	password string
	street   string
	city     string
	zip      string
}

var userFieldFlags = []string{"name", "email", "password", "street", "city", "zip"}

func (f *userFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "file", "f", "", "Read the user from a YAML or JSON file")
	fs.StringVar(&f.name, "name", "", "Full name")
	fs.StringVar(&f.email, "email", "", "Email address")
	fs.StringVar(&f.password, "password", "", "Password (sent, never printed)")
	fs.StringVar(&f.street, "street", "", "Street address")
	fs.StringVar(&f.city, "city", "", "City")
	fs.StringVar(&f.zip, "zip", "", "Postal code")
}

// apply copies the explicitly set flags onto u.
func (f *userFlags) apply(cmd *cobra.Command, u *types.User) {
	fs := cmd.Flags()
	if fs.Changed("name") {
		u.Name = f.name
	}
	if fs.Changed("email") {
		u.Email = f.email
	}
	if fs.Changed("password") {
		u.Password = f.password
	}
	if fs.Changed("street") {
		u.Street = f.street
	}
	if fs.Changed("city") {
		u.City = f.city
	}
	if fs.Changed("zip") {
		u.Zip = f.zip
	}
}

var (
	usersFilter   string
	usersJSONPath string
	userAdd       userFlags
	userEdit      userFlags
	usersDryRun   bool
	userDeleteYes bool
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Example: `  storeadmin users list
  storeadmin users list --filter 'city == "Oslo"'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, sel, err := compileQuery(usersFilter, usersJSONPath)
		if err != nil {
			return err
		}
		s := newSession()
		items, err := s.api.Users.ListAll(commandContext(cmd))
		if err != nil {
			return describeError(err, "user", "", s.cfg.APIURL)
		}
		return printRecords(cmd.OutOrStdout(), redactUsers(items), filter, sel, renderUsers)
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := types.ID(args[0])
		s := newSession()
		u, err := s.api.Users.GetOne(commandContext(cmd), id)
		if err != nil {
			return describeError(err, "user", id, s.cfg.APIURL)
		}
		u = u.Redacted()
		w := cmd.OutOrStdout()
		return printResult(w, u, func() error {
			tw := output.Table(w)
			_, _ = fmt.Fprintf(tw, "ID:\t%s\n", u.ID)
			_, _ = fmt.Fprintf(tw, "Name:\t%s\n", u.Name)
			_, _ = fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
			_, _ = fmt.Fprintf(tw, "Street:\t%s\n", u.Street)
			_, _ = fmt.Fprintf(tw, "City:\t%s\n", u.City)
			_, _ = fmt.Fprintf(tw, "Zip:\t%s\n", u.Zip)
			return tw.Flush()
		})
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user",
	Example: `  storeadmin users add --name Ann --email ann@example.com --password s3cret --city Oslo
  storeadmin users add --file ann.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var u types.User
		switch {
		case userAdd.file != "":
			rec, err := loadOne(recordfile.LoadUsers, userAdd.file, "users")
			if err != nil {
				return err
			}
			u = rec
			u.ID = ""
		case anyChanged(cmd, userFieldFlags...):
			userAdd.apply(cmd, &u)
		default:
			if err := runUserForm(&u, true); err != nil {
				return err
			}
		}
		if err := recordfile.ValidateRecord(recordfile.KindUser, u); err != nil {
			return err
		}

		s := newSession()
		users := view.NewCRUD[types.User]("users", s.api.Users, view.WithLogger(s.logger))
		created, err := users.Add(commandContext(cmd), u)
		if err != nil {
			return describeError(err, "user", "", s.cfg.APIURL)
		}
		return printMutation(cmd.OutOrStdout(), mutation{Action: "created", Resource: "user", ID: created.ID, Record: created.Redacted()},
			redactUsers(users.Items()), renderUsers)
	},
}

var usersEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a user",
	Long: `Edit a user. Flags are applied over the user's current values and the whole
record is sent. The password is only sent when --password is given.`,
	Example: `  storeadmin users edit 3 --city Bergen
  storeadmin users edit 3 --password n3w`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := types.ID(args[0])
		ctx := commandContext(cmd)
		s := newSession()
		users := view.NewCRUD[types.User]("users", s.api.Users, view.WithLogger(s.logger))
		if err := users.Load(ctx); err != nil {
			return describeError(err, "user", "", s.cfg.APIURL)
		}
		u, ok := view.Get(users.Collection, id)
		if !ok {
			return fmt.Errorf("%s", FormatNotFoundError("user", id))
		}
		u = u.Redacted()

		switch {
		case userEdit.file != "":
			rec, err := loadOne(recordfile.LoadUsers, userEdit.file, "users")
			if err != nil {
				return err
			}
			u = rec
		case anyChanged(cmd, userFieldFlags...):
			userEdit.apply(cmd, &u)
		default:
			if err := runUserForm(&u, false); err != nil {
				return err
			}
		}
		u.ID = id
		if err := recordfile.ValidateRecord(recordfile.KindUser, u); err != nil {
			return err
		}

		updated, err := users.Edit(ctx, id, u)
		if err != nil {
			return describeError(err, "user", id, s.cfg.APIURL)
		}
		return printMutation(cmd.OutOrStdout(), mutation{Action: "updated", Resource: "user", ID: id, Record: updated.Redacted()},
			redactUsers(users.Items()), renderUsers)
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := types.ID(args[0])
		if err := confirmDelete("user", id, userDeleteYes); err != nil {
			return err
		}
		s := newSession()
		users := view.NewCRUD[types.User]("users", s.api.Users, view.WithLogger(s.logger))
		if err := users.Remove(commandContext(cmd), id); err != nil {
			return describeError(err, "user", id, s.cfg.APIURL)
		}
		return printMutation(cmd.OutOrStdout(), mutation{Action: "deleted", Resource: "user", ID: id},
			redactUsers(users.Items()), renderUsers)
	},
}

var usersImportCmd = &cobra.Command{
	Use:   "import <file-or-glob>...",
	Short: "Add every user found in YAML or JSON files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := recordfile.LoadUsers(args...)
		if err != nil {
			return err
		}
		for i := range records {
			records[i].ID = ""
		}
		s := newSession()
		users := view.NewCRUD[types.User]("users", s.api.Users, view.WithLogger(s.logger))
		return runImport(cmd, s, "user", records, usersDryRun, users, s.api.Users.Add, func(w io.Writer, items []types.User) error {
			return renderUsers(w, redactUsers(items))
		})
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersAddCmd, usersEditCmd, usersDeleteCmd, usersImportCmd)

	usersListCmd.Flags().StringVar(&usersFilter, "filter", "", "Only show users matching an expression")
	usersListCmd.Flags().StringVar(&usersJSONPath, "jsonpath", "", "Print the values selected by a JSONPath, e.g. '$[*].email'")

	userAdd.bind(usersAddCmd)
	userEdit.bind(usersEditCmd)

	usersDeleteCmd.Flags().BoolVarP(&userDeleteYes, "yes", "y", false, "Do not ask for confirmation")
	usersImportCmd.Flags().BoolVar(&usersDryRun, "dry-run", false, "Validate the files without sending anything")
}

// redactUsers strips passwords before anything is printed.
func redactUsers(items []types.User) []types.User {
	out := make([]types.User, len(items))
	for i, u := range items {
		out[i] = u.Redacted()
	}
	return out
}

func renderUsers(w io.Writer, items []types.User) error {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "No users")
		return nil
	}

	tw := output.Table(w)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCITY\tZIP")
	for _, u := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.ID, output.Truncate(u.Name, 30), u.Email, u.City, u.Zip)
	}
	return tw.Flush()
}

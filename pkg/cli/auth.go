package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/cli/internal/output"
	"github.com/getmockd/storeadmin/pkg/credentials"
	"github.com/getmockd/storeadmin/pkg/recordfile"
)

var (
	loginEmail    string
	loginPassword string
	register      userFlags
	registerLogin bool
)

// authStatus is the JSON shape of login and auth status.
type authStatus struct {
	LoggedIn  bool              `json:"loggedIn"`
	Source    string            `json:"source"`
	TokenFile string            `json:"tokenFile"`
	Expired   bool              `json:"expired,omitempty"`
	Token     *credentials.Info `json:"token,omitempty"`
}

func currentAuthStatus(s *session) authStatus {
	token, source := s.creds.Load()
	st := authStatus{
		LoggedIn:  token != "",
		Source:    source,
		TokenFile: s.creds.Path(),
	}
	if token != "" {
		info := credentials.Inspect(token)
		st.Token = &info
		st.Expired = info.Expired(time.Now())
	}
	return st
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the token for later commands",
	Long: `Log in with email and password. The returned token is stored in the token file
and attached as a bearer token to every later request. STOREADMIN_TOKEN, when
set, takes precedence over the stored token.`,
	Example: `  storeadmin login --email admin@example.com --password s3cret
  storeadmin login`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password := loginEmail, loginPassword
		if email == "" || password == "" {
			if err := runLoginForm(&email, &password); err != nil {
				return err
			}
		}

		s := newSession()
		token, err := s.api.Auth.Login(commandContext(cmd), types.LoginRequest{Email: email, Password: password})
		if err != nil {
			return describeError(err, "account", "", s.cfg.APIURL)
		}
		if err := s.creds.Save(token); err != nil {
			return err
		}
		warnEnvToken(s)

		st := currentAuthStatus(s)
		w := cmd.OutOrStdout()
		return printResult(w, st, func() error {
			_, _ = fmt.Fprintf(w, "Logged in as %s\n", email)
			_, _ = fmt.Fprintf(w, "Token saved to %s\n", st.TokenFile)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		if err := s.creds.Clear(); err != nil {
			return err
		}
		warnEnvToken(s)

		w := cmd.OutOrStdout()
		return printResult(w, currentAuthStatus(s), func() error {
			_, _ = fmt.Fprintln(w, "Logged out")
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Example: `  storeadmin register --name Ann --email ann@example.com --password s3cret
  storeadmin register --name Ann --email ann@example.com --password s3cret --login`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var u types.User
		switch {
		case register.file != "":
			rec, err := loadOne(recordfile.LoadUsers, register.file, "users")
			if err != nil {
				return err
			}
			u = rec
		case anyChanged(cmd, userFieldFlags...):
			register.apply(cmd, &u)
		default:
			if err := runUserForm(&u, true); err != nil {
				return err
			}
		}
		if err := recordfile.ValidateRecord(recordfile.KindUser, u); err != nil {
			return err
		}

		s := newSession()
		ctx := commandContext(cmd)
		result, err := s.api.Auth.Register(ctx, types.RegisterRequest{
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
			Street:   u.Street,
			City:     u.City,
			Zip:      u.Zip,
		})
		if err != nil {
			return describeError(err, "account", "", s.cfg.APIURL)
		}

		loggedIn := false
		if registerLogin {
			token := result.Token
			if token == "" {
				token, err = s.api.Auth.Login(ctx, types.LoginRequest{Email: u.Email, Password: u.Password})
				if err != nil {
					return fmt.Errorf("registered, but login failed: %w", describeError(err, "account", "", s.cfg.APIURL))
				}
			}
			if err := s.creds.Save(token); err != nil {
				return err
			}
			loggedIn = true
		}

		account := result.Account
		if account == nil {
			account = &types.User{Name: u.Name, Email: u.Email, Street: u.Street, City: u.City, Zip: u.Zip}
		}
		w := cmd.OutOrStdout()
		out := struct {
			Account  *types.User `json:"account"`
			LoggedIn bool        `json:"loggedIn"`
		}{account, loggedIn}
		return printResult(w, out, func() error {
			if account.ID.IsZero() {
				_, _ = fmt.Fprintf(w, "Registered %s\n", account.Email)
			} else {
				_, _ = fmt.Fprintf(w, "Registered %s (id %s)\n", account.Email, account.ID)
			}
			if loggedIn {
				_, _ = fmt.Fprintf(w, "Token saved to %s\n", s.creds.Path())
			}
			return nil
		})
	},
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect stored credentials",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the token comes from and what it claims",
	Long: `Show the token source and, for JWTs, the unverified subject and expiry.
Nothing is sent to the backend; an expired token is still sent on requests and
the backend decides.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		st := currentAuthStatus(s)
		w := cmd.OutOrStdout()
		return printResult(w, st, func() error {
			if !st.LoggedIn {
				_, _ = fmt.Fprintln(w, "Not logged in")
				_, _ = fmt.Fprintf(w, "Token file: %s\n", st.TokenFile)
				return nil
			}
			tw := output.Table(w)
			_, _ = fmt.Fprintf(tw, "Source:\t%s\n", st.Source)
			if st.Source == credentials.SourceFile {
				_, _ = fmt.Fprintf(tw, "Token file:\t%s\n", st.TokenFile)
			}
			if st.Token == nil || !st.Token.JWT {
				_, _ = fmt.Fprintf(tw, "Token:\topaque\n")
				return tw.Flush()
			}
			if st.Token.Subject != "" {
				_, _ = fmt.Fprintf(tw, "Subject:\t%s\n", st.Token.Subject)
			}
			if st.Token.Email != "" {
				_, _ = fmt.Fprintf(tw, "Email:\t%s\n", st.Token.Email)
			}
			if st.Token.Role != "" {
				_, _ = fmt.Fprintf(tw, "Role:\t%s\n", st.Token.Role)
			}
			if !st.Token.ExpiresAt.IsZero() {
				exp := st.Token.ExpiresAt.Local().Format(time.RFC3339)
				if st.Expired {
					exp += " (expired)"
				}
				_, _ = fmt.Fprintf(tw, "Expires:\t%s\n", exp)
			}
			return tw.Flush()
		})
	},
}

// authToken is the JSON shape of auth token.
type authToken struct {
	Token  string `json:"token"`
	Source string `json:"source"`
}

var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print the bearer token sent on requests",
	Long: `Print the token the client attaches to requests, for use with other tools.
Fails when no token is stored or set in the environment.`,
	Example: `  curl -H "Authorization: Bearer $(storeadmin auth token)" http://localhost:8080/products/all`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		token, err := s.creds.Require()
		if err != nil {
			return fmt.Errorf("%w (run 'storeadmin login' or set %s)", err, credentials.EnvToken)
		}
		_, source := s.creds.Load()
		w := cmd.OutOrStdout()
		return printResult(w, authToken{Token: token, Source: source}, func() error {
			_, _ = fmt.Fprintln(w, token)
			return nil
		})
	},
}

// warnEnvToken notes that STOREADMIN_TOKEN shadows the token file.
func warnEnvToken(s *session) {
	if _, source := s.creds.Load(); source == credentials.SourceEnv {
		output.Warn("%s is set and takes precedence over %s", credentials.EnvToken, s.creds.Path())
	}
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, authCmd)
	authCmd.AddCommand(authStatusCmd, authTokenCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")

	register.bind(registerCmd)
	registerCmd.Flags().BoolVar(&registerLogin, "login", false, "Store a token for the new account")
}

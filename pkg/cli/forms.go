package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	types "github.com/getmockd/storeadmin/pkg/api/types"
)

// interactive reports whether stdin is a terminal, so a form can be shown.
func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validPrice(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("price must be a number")
	}
	if v < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

func validStock(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("stock must be a whole number")
	}
	if v < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

// runProductForm prompts for every product field, starting from p.
func runProductForm(p *types.Product) error {
	if !interactive() {
		return ErrNoFields
	}

	category := string(p.Category)
	if category == "" {
		category = string(types.CategoryElectronics)
	}
	price := strconv.FormatFloat(p.Price, 'f', -1, 64)
	stock := strconv.Itoa(p.Stock)

	options := make([]huh.Option[string], 0, len(types.Categories))
	for _, c := range types.Categories {
		options = append(options, huh.NewOption(title(string(c)), string(c)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&p.Name).
				Validate(required("name")),
			huh.NewText().
				Title("Description").
				Value(&p.Description),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&category),
			huh.NewInput().
				Title("Price").
				Value(&price).
				Validate(validPrice),
			huh.NewInput().
				Title("Stock").
				Value(&stock).
				Validate(validStock),
			huh.NewInput().
				Title("Tags").
				Placeholder("comma,separated").
				Value(&p.Tags),
			huh.NewInput().
				Title("Image URL").
				Value(&p.Image),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	p.Category = types.Category(category)
	p.Price, _ = strconv.ParseFloat(strings.TrimSpace(price), 64)
	p.Stock, _ = strconv.Atoi(strings.TrimSpace(stock))
	return nil
}

// runUserForm prompts for every user field, starting from u. The password is
// only required for new accounts; left empty on edit it is not sent.
func runUserForm(u *types.User, isNew bool) error {
	if !interactive() {
		return ErrNoFields
	}

	passwordTitle := "Password"
	passwordCheck := required("password")
	if !isNew {
		passwordTitle = "New password (leave empty to keep)"
		passwordCheck = func(string) error { return nil }
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&u.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Email").
				Value(&u.Email).
				Validate(required("email")),
			huh.NewInput().
				Title(passwordTitle).
				EchoMode(huh.EchoModePassword).
				Value(&u.Password).
				Validate(passwordCheck),
		),
		huh.NewGroup(
			huh.NewInput().Title("Street").Value(&u.Street),
			huh.NewInput().Title("City").Value(&u.City),
			huh.NewInput().Title("Zip").Value(&u.Zip),
		),
	)
	return form.Run()
}

// runLoginForm prompts for whichever credentials are missing.
func runLoginForm(email, password *string) error {
	if !interactive() {
		return errors.New("--email and --password are required when not running in a terminal")
	}

	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(required("email")))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(required("password")))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

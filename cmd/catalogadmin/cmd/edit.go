package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yourorg/catalogadmin/internal/client"
	"github.com/yourorg/catalogadmin/internal/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit <product-id>",
	Short: "Edit a product through the catalog API",
	Long: `Loads the product and the category list, applies the given field
overrides to the pre-filled form, and submits the update.

Fields that are not given keep their current value. Each --image replaces
the stored image set.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	f := editCmd.Flags()
	f.String("api-url", "http://localhost:8080/api/v1", "Base URL of the catalog API")
	f.String("token", "", "Admin bearer token (defaults to ADMIN_TOKEN)")
	f.String("name", "", "Product name")
	f.String("description", "", "Product description")
	f.String("price", "", "Price, e.g. 19.99")
	f.String("stock", "", "Units in stock")
	f.String("category", "", "Category id")
	f.String("currency", "", "Currency code")
	f.Bool("featured", false, "Feature the product")
	f.StringArray("image", nil, "Image file to attach (repeatable)")

	_ = viper.BindPFlag("API_BASE_URL", f.Lookup("api-url"))
	_ = viper.BindPFlag("ADMIN_TOKEN", f.Lookup("token"))
}

func runEdit(cmd *cobra.Command, args []string) error {
	setupLogger()

	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	nav := newSignalNavigator(out)
	ed := editor.New(
		client.New(viper.GetString("API_BASE_URL"), nil),
		&terminalNotifier{out: out, errOut: cmd.ErrOrStderr()},
		nav,
	)
	defer ed.Close()

	view := ed.Load(ctx, args[0])
	if !view.ShowsForm() {
		return fmt.Errorf("product %s: %s", args[0], view.Message)
	}
	printView(out, view)

	ov, err := overridesFromFlags(cmd)
	if err != nil {
		return err
	}
	values := *view.Form
	applyOverrides(&values, ov)

	err = ed.Submit(ctx, values, viper.GetString("ADMIN_TOKEN"))
	var invalid *editor.ValidationError
	switch {
	case errors.As(err, &invalid):
		printFieldErrors(cmd.ErrOrStderr(), invalid.Fields)
		return errors.New("product was not updated")
	case err != nil:
		return err
	}

	select {
	case <-nav.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// overrides holds the form fields given on the command line; nil means keep.
type overrides struct {
	Name        *string
	Description *string
	Price       *string
	Stock       *string
	Category    *string
	Currency    *string
	Featured    *bool
	Images      []client.File
}

func overridesFromFlags(cmd *cobra.Command) (overrides, error) {
	f := cmd.Flags()
	var ov overrides

	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}
	ov.Name = str("name")
	ov.Description = str("description")
	ov.Price = str("price")
	ov.Stock = str("stock")
	ov.Category = str("category")
	ov.Currency = str("currency")

	if f.Changed("featured") {
		v, _ := f.GetBool("featured")
		ov.Featured = &v
	}

	paths, _ := f.GetStringArray("image")
	images, err := loadImages(paths)
	if err != nil {
		return overrides{}, err
	}
	ov.Images = images
	return ov, nil
}

func applyOverrides(v *editor.FormValues, ov overrides) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&v.Name, ov.Name)
	set(&v.Description, ov.Description)
	set(&v.Price, ov.Price)
	set(&v.Stock, ov.Stock)
	set(&v.Category, ov.Category)
	set(&v.Currency, ov.Currency)
	if ov.Featured != nil {
		v.Featured = *ov.Featured
	}
	if len(ov.Images) > 0 {
		v.Images = ov.Images
	}
}

func printView(w io.Writer, v editor.View) {
	f := v.Form
	fmt.Fprintf(w, "Editing product %s\n", v.ProductID)
	fmt.Fprintf(w, "  name:        %s\n", f.Name)
	fmt.Fprintf(w, "  description: %s\n", f.Description)
	fmt.Fprintf(w, "  price:       %s %s\n", f.Price, f.Currency)
	fmt.Fprintf(w, "  stock:       %s\n", f.Stock)
	fmt.Fprintf(w, "  category:    %s\n", f.Category)
	fmt.Fprintf(w, "  featured:    %t\n", f.Featured)
	fmt.Fprintln(w, "Categories:")
	for _, c := range v.Categories {
		fmt.Fprintf(w, "  %d  %s\n", c.ID, c.Name)
	}
}

func printFieldErrors(w io.Writer, fields editor.FieldErrors) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", name, fields[name])
	}
}

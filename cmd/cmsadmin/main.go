package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mdouchement/cmsadmin/internal/client"
	"github.com/mdouchement/cmsadmin/internal/client/tui"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &cobra.Command{
		Use:           "cmsadmin",
		Short:         "Administration console of the CMS",
		Version:       fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	c.PersistentFlags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(passwordCmd)
	c.AddCommand(consoleCmd)
	c.AddCommand(postCmd())
	c.AddCommand(eventCmd())
	c.AddCommand(galleryCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.ExecuteContext(ctx); err != nil {
		if !client.Reported(err) {
			fmt.Println(err)
		}
		stop()
		os.Exit(1)
	}
}

func env() (*client.Env, error) {
	settings, err := client.LoadSettings(cfg)
	if err != nil {
		return nil, err
	}
	return client.NewEnv(settings, tui.NewLogger(settings.LogFile)), nil
}

// run loads the environment and runs f with it.
func run(f func(ctx context.Context, e *client.Env, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := env()
		if err != nil {
			return err
		}
		return f(cmd.Context(), e, args)
	}
}

// changed returns a pointer to the flag value if it has been set.
func changed[T any](cmd *cobra.Command, name string, v T) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

var (
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the CMS backend",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, e *client.Env, _ []string) error {
			return e.Login(ctx)
		}),
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Logout by removing the stored credentials",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, e *client.Env, _ []string) error {
			return e.Logout()
		}),
	}

	passwordCmd = &cobra.Command{
		Use:   "password",
		Short: "Change the administrator's password",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, e *client.Env, _ []string) error {
			return e.Password(ctx)
		}),
	}

	consoleCmd = &cobra.Command{
		Use:   "console",
		Short: "Text-based administration console",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, e *client.Env, _ []string) error {
			return e.Console()
		}),
	}
)

////////////////////
//                //
// Blog posts     //
//                //
////////////////////

func postCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "post",
		Short: "Manage blog posts",
		Args:  cobra.NoArgs,
	}

	var (
		search string
		dump   bool
		yes    bool
		in     client.PostInput
	)

	list := &cobra.Command{
		Use:   "list",
		Short: "List blog posts",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, e *client.Env, _ []string) error {
			return e.Posts(ctx, search)
		}),
	}
	list.Flags().StringVarP(&search, "search", "s", "", "Filter on title and description")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, e *client.Env, args []string) error {
			return e.ShowPost(ctx, args[0], dump)
		}),
	}
	show.Flags().BoolVar(&dump, "dump", false, "Dump the raw entity")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a blog post",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, e *client.Env, _ []string) error {
			return e.CreatePost(ctx, in)
		}),
	}
	create.Flags().StringVar(&in.Title, "title", "", "Title")
	create.Flags().StringVar(&in.Description, "description", "", "Description")
	create.Flags().StringVar(&in.Image, "image", "", "Image file")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update the title and the description of a blog post",
		Args:  cobra.ExactArgs(1),
	}
	update.Flags().StringVar(&in.Title, "title", "", "Title")
	update.Flags().StringVar(&in.Description, "description", "", "Description")
	update.RunE = run(func(ctx context.Context, e *client.Env, args []string) error {
		return e.UpdatePost(ctx, args[0], client.PostChanges{
			Title:       changed(update, "title", in.Title),
			Description: changed(update, "description", in.Description),
		})
	})

	remove := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, e *client.Env, args []string) error {
			return e.DeletePost(ctx, args[0], yes)
		}),
	}
	remove.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	c.AddCommand(list, show, create, update, remove)
	return c
}

////////////////////
//                //
// Events         //
//                //
////////////////////

func eventCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "event",
		Short: "Manage events",
		Args:  cobra.NoArgs,
	}

	var (
		search string
		dump   bool
		yes    bool
		in     client.EventInput
	)

	list := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, e *client.Env, _ []string) error {
			return e.Events(ctx, search)
		}),
	}
	list.Flags().StringVarP(&search, "search", "s", "", "Filter on title and description")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, e *client.Env, args []string) error {
			return e.ShowEvent(ctx, args[0], dump)
		}),
	}
	show.Flags().BoolVar(&dump, "dump", false, "Dump the raw entity")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, e *client.Env, _ []string) error {
			return e.CreateEvent(ctx, in)
		}),
	}
	create.Flags().StringVar(&in.Title, "title", "", "Title")
	create.Flags().StringVar(&in.Description, "description", "", "Description")
	create.Flags().StringVar(&in.Date, "date", "", "Date (e.g. 2024-03-01)")
	create.Flags().StringVar(&in.Venue, "venue", "", "Venue")
	create.Flags().StringVar(&in.Image, "image", "", "Image file")
	create.Flags().BoolVar(&in.Inactive, "inactive", false, "Create the event as inactive")

	var active bool
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update an event",
		Args:  cobra.ExactArgs(1),
	}
	update.Flags().StringVar(&in.Title, "title", "", "Title")
	update.Flags().StringVar(&in.Description, "description", "", "Description")
	update.Flags().StringVar(&in.Date, "date", "", "Date (e.g. 2024-03-01)")
	update.Flags().StringVar(&in.Venue, "venue", "", "Venue")
	update.Flags().BoolVar(&active, "active", true, "Event status")
	update.RunE = run(func(ctx context.Context, e *client.Env, args []string) error {
		return e.UpdateEvent(ctx, args[0], client.EventChanges{
			Title:       changed(update, "title", in.Title),
			Description: changed(update, "description", in.Description),
			Date:        changed(update, "date", in.Date),
			Venue:       changed(update, "venue", in.Venue),
			Active:      changed(update, "active", active),
		})
	})

	remove := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, e *client.Env, args []string) error {
			return e.DeleteEvent(ctx, args[0], yes)
		}),
	}
	remove.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	c.AddCommand(list, show, create, update, remove)
	return c
}

////////////////////
//                //
// Gallery        //
//                //
////////////////////

func galleryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "gallery",
		Short: "Manage the gallery",
		Args:  cobra.NoArgs,
	}

	var (
		search   string
		category string
		in       client.GalleryInput
	)

	list := &cobra.Command{
		Use:   "list",
		Short: "List gallery images",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, e *client.Env, _ []string) error {
			return e.Gallery(ctx, category, search)
		}),
	}
	list.Flags().StringVarP(&search, "search", "s", "", "Filter on title")
	list.Flags().StringVar(&category, "category", "all", "Category (all, general, events, projects, team)")

	create := &cobra.Command{
		Use:   "create",
		Short: "Add an image to the gallery",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, e *client.Env, _ []string) error {
			return e.CreateGalleryImage(ctx, in)
		}),
	}
	create.Flags().StringVar(&in.Image, "image", "", "Image file")
	create.Flags().StringVar(&in.Title, "title", "", "Title")
	create.Flags().StringVar(&in.Category, "category", "", "Category (general, events, projects, team)")

	c.AddCommand(list, create)
	return c
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Social reading client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(a.out)

	root.AddCommand(authCommands(a)...)
	root.AddCommand(bookCommands(a)...)
	root.AddCommand(commentCommands(a)...)
	root.AddCommand(shelfCommands(a)...)
	root.AddCommand(profileCommands(a)...)
	root.AddCommand(overviewCommand(a))

	return root
}

func authCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "login <username> <password>",
			Short: "Log in and store the session",
			Args:  cobra.ExactArgs(2), //nolint:mnd
			RunE: func(cmd *cobra.Command, args []string) error {
				out := a.auth.Login(cmd.Context(), args[0], args[1])
				if sess := out.Data(); out.IsSuccess() && sess != nil {
					return writeJSON(a.out, map[string]string{"objectId": sess.UserID, "username": sess.Username})
				}

				return render(a.out, out)
			},
		},
		{
			Use:   "register <username> <email> <password> <firstname> <lastname>",
			Short: "Create an account",
			Args:  cobra.ExactArgs(5), //nolint:mnd
			RunE: func(cmd *cobra.Command, args []string) error {
				return render(a.out, a.auth.Register(cmd.Context(), args[0], args[1], args[2], args[3], args[4]))
			},
		},
		{
			Use:   "whoami",
			Short: "Check the stored session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return render(a.out, a.auth.Authenticate(cmd.Context()))
			},
		},
		{
			Use:   "logout",
			Short: "End the session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return render(a.out, a.auth.Logout(cmd.Context()))
			},
		},
		{
			Use:   "reset-password <email>",
			Short: "Request a password reset mail",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return render(a.out, a.auth.ResetPassword(cmd.Context(), args[0]))
			},
		},
	}
}

// position reads the --page and --percentage flags. Unset flags are nil.
func position(cmd *cobra.Command) (*int, *float64, error) {
	var (
		page       *int
		percentage *float64
	)

	if cmd.Flags().Changed("page") {
		v, err := cmd.Flags().GetInt("page")
		if err != nil {
			return nil, nil, fmt.Errorf("page: %w", err)
		}

		page = &v
	}

	if cmd.Flags().Changed("percentage") {
		v, err := cmd.Flags().GetFloat64("percentage")
		if err != nil {
			return nil, nil, fmt.Errorf("percentage: %w", err)
		}

		percentage = &v
	}

	return page, percentage, nil
}

func positionFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().Int("page", 0, "page number")
	cmd.Flags().Float64("percentage", 0, "percentage read")

	return cmd
}

func bookCommands(a *app) []*cobra.Command {
	progress := positionFlags(&cobra.Command{
		Use:   "progress <book-id>",
		Short: "Update reading progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, percentage, err := position(cmd)
			if err != nil {
				return err
			}

			finished, _ := cmd.Flags().GetBool("finished")
			giveUp, _ := cmd.Flags().GetBool("give-up")

			return render(a.out, a.books.UpdateBookProgress(cmd.Context(), args[0], percentage, page, finished, giveUp))
		},
	})
	progress.Flags().Bool("finished", false, "mark the book as finished")
	progress.Flags().Bool("give-up", false, "mark the book as given up")

	rate := &cobra.Command{
		Use:   "rate <book-id> <rate> [review]",
		Short: "Rate a book from 0 to 10",
		Args:  cobra.RangeArgs(2, 3), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("rate: %w", err)
			}

			review := ""
			if len(args) == 3 { //nolint:mnd
				review = args[2]
			}

			return render(a.out, a.books.RateBook(cmd.Context(), args[0], value, review))
		},
	}

	return []*cobra.Command{
		{
			Use:   "search <term>",
			Short: "Search the catalogue",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return render(a.out, a.books.SearchBook(cmd.Context(), args[0]))
			},
		},
		{
			Use:   "book <book-id>",
			Short: "Show a book with your progress",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return render(a.out, a.books.GetBookByID(cmd.Context(), args[0]))
			},
		},
		{
			Use:   "reading",
			Short: "List books currently being read",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return render(a.out, a.books.GetCurrentReadingBooks(cmd.Context()))
			},
		},
		progress,
		rate,
	}
}

func commentCommands(a *app) []*cobra.Command {
	comment := positionFlags(&cobra.Command{
		Use:   "comment <book-id> <text>",
		Short: "Comment on a position in a book",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			page, percentage, err := position(cmd)
			if err != nil {
				return err
			}

			spoilers, _ := cmd.Flags().GetBool("spoilers")

			return render(a.out, a.comments.AddComment(cmd.Context(), args[0], args[1], page, percentage, spoilers))
		},
	})
	comment.Flags().Bool("spoilers", false, "the comment contains spoilers")

	comments := positionFlags(&cobra.Command{
		Use:   "comments <book-id>",
		Short: "List comments at a position in a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, percentage, err := position(cmd)
			if err != nil {
				return err
			}

			return render(a.out, a.comments.GetCommentsInPage(cmd.Context(), args[0], page, percentage))
		},
	})

	return []*cobra.Command{comments, comment}
}

func shelfCommands(a *app) []*cobra.Command {
	create := &cobra.Command{
		Use:   "shelf-create <name> <description>",
		Short: "Create a shelf",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			public, _ := cmd.Flags().GetBool("public")

			return render(a.out, a.shelves.CreateShelf(cmd.Context(), args[0], args[1], public))
		},
	}
	create.Flags().Bool("public", false, "make the shelf visible to others")

	return []*cobra.Command{
		{
			Use:   "shelves",
			Short: "List your shelves",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return render(a.out, a.shelves.GetUserShelves(cmd.Context()))
			},
		},
		create,
		{
			Use:   "shelf-add <shelf-id> <book-id>",
			Short: "Add a book to a shelf",
			Args:  cobra.ExactArgs(2), //nolint:mnd
			RunE: func(cmd *cobra.Command, args []string) error {
				return render(a.out, a.shelves.AddBookToShelf(cmd.Context(), args[0], args[1]))
			},
		},
	}
}

func profileCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "profile",
			Short: "Show your profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return render(a.out, a.profiles.GetUserProfile(cmd.Context()))
			},
		},
		{
			Use:   "following",
			Short: "List followed profiles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return render(a.out, a.profiles.GetFollowingProfiles(cmd.Context()))
			},
		},
	}
}

type overview struct {
	Profile *domain.Profile            `json:"profile"`
	Reading *[]domain.BookWithProgress `json:"reading"`
	Shelves *[]domain.Shelf            `json:"shelves"`
}

// overviewCommand fetches profile, reading list and shelves concurrently.
// The first failure cancels the remaining calls.
func overviewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show profile, reading list and shelves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result overview

			g, ctx := errgroup.WithContext(cmd.Context())

			g.Go(func() (err error) {
				result.Profile, err = a.profiles.GetUserProfile(ctx).Result()

				return err
			})
			g.Go(func() (err error) {
				result.Reading, err = a.books.GetCurrentReadingBooks(ctx).Result()

				return err
			})
			g.Go(func() (err error) {
				result.Shelves, err = a.shelves.GetUserShelves(ctx).Result()

				return err
			})

			if err := g.Wait(); err != nil {
				return err //nolint:wrapcheck
			}

			return writeJSON(a.out, result)
		},
	}
}

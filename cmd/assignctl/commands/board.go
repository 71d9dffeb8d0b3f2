package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/infra/events/bookingfeed"
	"github.com/m04kA/SMC-AssignmentService/internal/scheduleboard"
)

// BoardCmd недельная доска расписания
func BoardCmd(app *AppContext) *cobra.Command {
	var (
		week                  string
		previewBooking, medic string
		assign, override      bool
		watch                 bool
		dsn                   string
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the weekly schedule board",
		Long: "Loads medics and shifts of the ISO week containing --week. " +
			"With --booking and --medic previews a drag-and-drop assignment (and applies it with --assign). " +
			"With --watch re-renders the board on every change notification from the database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if week != "" {
				parsed, err := time.Parse(domain.DateFormat, week)
				if err != nil {
					return fmt.Errorf("invalid --week %q: expected YYYY-MM-DD", week)
				}
				date = parsed
			}

			board := scheduleboard.New(app.Client, app.Logger)
			if err := board.Load(app.Ctx, date); err != nil {
				return fmt.Errorf("failed to load board: %w", err)
			}

			if previewBooking != "" || medic != "" {
				return runPreview(app, board, previewBooking, medic, assign, override)
			}

			if err := app.render(newBoardView(board.Snapshot())); err != nil {
				return err
			}

			if !watch {
				return nil
			}

			if dsn == "" {
				dsn = app.Cfg.Database.DSN()
			}

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.Logger.Info("board: watching %s for changes", bookingfeed.Channel)
			feed := &renderingFeed{
				feed: bookingfeed.New(dsn, app.Logger),
				after: func() {
					if err := app.render(newBoardView(board.Snapshot())); err != nil {
						app.Logger.Error("board: render failed: %v", err)
					}
				},
			}

			if err := board.Watch(ctx, feed); err != nil && ctx.Err() == nil {
				return fmt.Errorf("watch failed: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&week, "week", "", "Any date in the week (YYYY-MM-DD), default today")
	flags.StringVar(&previewBooking, "booking", "", "Booking to preview an assignment for")
	flags.StringVar(&medic, "medic", "", "Medic to preview on --booking")
	flags.BoolVar(&assign, "assign", false, "Apply the previewed assignment")
	flags.BoolVar(&override, "override", false, "Accept warning conflicts when assigning")
	flags.BoolVar(&watch, "watch", false, "Keep running and re-render on booking changes")
	flags.StringVar(&dsn, "dsn", "", "PostgreSQL DSN for change notifications (default from config)")
	cmd.MarkFlagsRequiredTogether("booking", "medic")
	cmd.MarkFlagsMutuallyExclusive("watch", "booking")

	return cmd
}

func runPreview(app *AppContext, board *scheduleboard.Board, bookingFlag, medicFlag string, assign, override bool) error {
	bookingID, err := parseUUIDFlag("booking", bookingFlag)
	if err != nil {
		return err
	}
	medicID, err := parseUUIDFlag("medic", medicFlag)
	if err != nil {
		return err
	}

	preview, err := board.Preview(app.Ctx, bookingID, medicID)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	if err := app.render(newPreviewView(preview)); err != nil {
		return err
	}

	if !assign {
		return nil
	}

	res, err := board.Assign(app.Ctx, bookingID, medicID, override)
	if err != nil {
		return fmt.Errorf("assign failed: %w", err)
	}
	return app.render(newAssignmentView(res))
}

// renderingFeed перерисовывает доску после обработки каждого события
type renderingFeed struct {
	feed  scheduleboard.ChangeFeed
	after func()
}

func (f *renderingFeed) Run(ctx context.Context, handle func(bookingfeed.Event)) error {
	return f.feed.Run(ctx, func(e bookingfeed.Event) {
		handle(e)
		f.after()
	})
}

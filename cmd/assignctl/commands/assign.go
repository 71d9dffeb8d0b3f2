package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/assignmentapi"
	"github.com/m04kA/SMC-AssignmentService/pkg/types"
)

// AutoAssignCmd запускает автоназначение бронирования
func AutoAssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "auto-assign <booking-id>",
		Short: "Pick the best medic for a pending booking",
		Long:  "Runs candidate filtering and scoring on the service. Prints the ranked candidates and the outcome.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookingID, err := parseUUIDFlag("booking", args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("auto-assign: booking=%s", bookingID)

			result, err := app.Client.AutoAssign(app.Ctx, bookingID)
			if err != nil {
				return fmt.Errorf("auto-assign failed: %w", err)
			}

			return app.render(result)
		},
	}
}

// CheckConflictsCmd проверяет пару (медик, смена) без сохранения
func CheckConflictsCmd(app *AppContext) *cobra.Command {
	var (
		bookingFlag, medicFlag string
		date, start, end       string
		confinedSpace, trauma  bool
	)

	cmd := &cobra.Command{
		Use:   "check-conflicts",
		Short: "Check a medic against a shift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookingID, err := parseUUIDFlag("booking", bookingFlag)
			if err != nil {
				return err
			}
			medicID, err := parseUUIDFlag("medic", medicFlag)
			if err != nil {
				return err
			}
			if _, err := time.Parse(domain.DateFormat, date); err != nil {
				return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
			}
			if _, err := types.NewTimeStringFromString(start); err != nil {
				return fmt.Errorf("invalid --start %q: %w", start, err)
			}
			if _, err := types.NewTimeStringFromString(end); err != nil {
				return fmt.Errorf("invalid --end %q: %w", end, err)
			}

			check := assignmentapi.ConflictCheck{
				BookingID:      bookingID,
				MedicID:        medicID,
				ShiftDate:      date,
				ShiftStartTime: start,
				ShiftEndTime:   end,
			}
			if cmd.Flags().Changed("confined-space") {
				check.ConfinedSpaceRequired = &confinedSpace
			}
			if cmd.Flags().Changed("trauma") {
				check.TraumaSpecialistRequired = &trauma
			}

			report, err := app.Client.CheckConflicts(app.Ctx, check)
			if err != nil {
				return fmt.Errorf("conflict check failed: %w", err)
			}

			return app.render(newReportView(report))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&bookingFlag, "booking", "", "Booking ID")
	flags.StringVar(&medicFlag, "medic", "", "Medic ID")
	flags.StringVar(&date, "date", "", "Shift date (YYYY-MM-DD)")
	flags.StringVar(&start, "start", "", "Shift start (HH:MM)")
	flags.StringVar(&end, "end", "", "Shift end (HH:MM)")
	flags.BoolVar(&confinedSpace, "confined-space", false, "Override confined space requirement")
	flags.BoolVar(&trauma, "trauma", false, "Override trauma specialist requirement")
	_ = cmd.MarkFlagRequired("booking")
	_ = cmd.MarkFlagRequired("medic")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// AssignCmd ручное назначение медика
func AssignCmd(app *AppContext) *cobra.Command {
	var (
		medicFlag string
		override  bool
		version   int64
	)

	cmd := &cobra.Command{
		Use:   "assign <booking-id>",
		Short: "Assign a medic to a booking and confirm it",
		Long:  "Manual assignment. Warnings are only accepted with --override; critical conflicts always reject.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookingID, err := parseUUIDFlag("booking", args[0])
			if err != nil {
				return err
			}
			medicID, err := parseUUIDFlag("medic", medicFlag)
			if err != nil {
				return err
			}

			var expected *int64
			if cmd.Flags().Changed("version") {
				expected = &version
			}

			res, err := app.Client.Assign(app.Ctx, bookingID, medicID, override, expected)
			if err != nil {
				var rejected *assignmentapi.RejectedError
				if errors.As(err, &rejected) {
					if rerr := app.render(rejectionView{Error: rejected.Message, Conflicts: newReportView(rejected.Report)}); rerr != nil {
						return rerr
					}
					return fmt.Errorf("%w: %s", ErrAssignmentRejected, rejected.Message)
				}
				return fmt.Errorf("assign failed: %w", err)
			}

			return app.render(newAssignmentView(res))
		},
	}

	cmd.Flags().StringVar(&medicFlag, "medic", "", "Medic ID")
	cmd.Flags().BoolVar(&override, "override", false, "Accept warning conflicts")
	cmd.Flags().Int64Var(&version, "version", 0, "Booking version seen by the caller")
	_ = cmd.MarkFlagRequired("medic")

	return cmd
}
